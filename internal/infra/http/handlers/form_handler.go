package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sclayai/proposal-intake/internal/usecase"
)

// ProposalSubmitter is implemented by usecase.SubmitProposalUseCase.
type ProposalSubmitter interface {
	SubmitOnboarding(ctx context.Context, d *usecase.Draft) (*usecase.SubmissionOutput, error)
	SubmitProspect(ctx context.Context, d *usecase.Draft) (*usecase.SubmissionOutput, error)
}

type FormHandler struct {
	submitter ProposalSubmitter
	logger    *zap.Logger
}

func NewFormHandler(submitter ProposalSubmitter, logger *zap.Logger) *FormHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormHandler{submitter: submitter, logger: logger}
}

func (h *FormHandler) SubmitOnboarding(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, h.submitter.SubmitOnboarding)
}

func (h *FormHandler) SubmitProspect(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, h.submitter.SubmitProspect)
}

type submitFunc func(context.Context, *usecase.Draft) (*usecase.SubmissionOutput, error)

// submit answers in the shape the form renders: a summary message, plus the
// full field error map on validation failure.
func (h *FormHandler) submit(w http.ResponseWriter, r *http.Request, fn submitFunc) {
	draft, err := draftFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, usecase.SubmissionOutput{Message: "Invalid form data"})
		return
	}

	out, err := fn(r.Context(), draft)
	if err != nil {
		var de *usecase.DomainError
		if errors.As(err, &de) {
			writeJSON(w, statusFor(de.Code), usecase.SubmissionOutput{Message: de.Message, Errors: de.Fields})
			return
		}
		var te *usecase.TechnicalError
		if errors.As(err, &te) {
			writeJSON(w, statusFor(te.Code), usecase.SubmissionOutput{Message: te.Message})
			return
		}
		h.logger.Error("unexpected submission error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, usecase.SubmissionOutput{Message: "Unexpected error"})
		return
	}

	writeJSON(w, http.StatusCreated, out)
}
