package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sclayai/proposal-intake/internal/entity"
	"github.com/sclayai/proposal-intake/internal/session"
	"github.com/sclayai/proposal-intake/internal/usecase"
)

// DashboardService is implemented by usecase.Dashboard.
type DashboardService interface {
	View(ctx context.Context, f usecase.Filter) usecase.DashboardOutput
	EditDraft(ctx context.Context, kind entity.Kind, id string) (*usecase.Draft, error)
	Edit(ctx context.Context, kind entity.Kind, id string, draft *usecase.Draft) (*usecase.MutationOutput, error)
	SetStatus(ctx context.Context, kind entity.Kind, id, status string) (*usecase.MutationOutput, error)
	Delete(ctx context.Context, kind entity.Kind, id string) (*usecase.MutationOutput, error)
	MutationState(kind entity.Kind, id string) usecase.MutationState
}

type DashboardHandler struct {
	dashboard DashboardService
}

func NewDashboardHandler(dashboard DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

type DraftResponse struct {
	Kind   entity.Kind         `json:"kind"`
	ID     string              `json:"id"`
	Values map[string][]string `json:"values"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

func filterFromQuery(r *http.Request) usecase.Filter {
	q := r.URL.Query()
	return usecase.Filter{Query: q.Get("q"), Type: q.Get("type"), Status: q.Get("status")}
}

// HandleList fetches and serves the filtered aggregate. A failed fetch still
// answers 200 with a top-level error so the page can offer a retry.
func (h *DashboardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	out := h.dashboard.View(r.Context(), filterFromQuery(r))
	writeJSON(w, http.StatusOK, paginate(r, out))
}

// HandleRefresh is the retry action of the dashboard page.
func (h *DashboardHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.HandleList(w, r)
}

func paginate(r *http.Request, out usecase.DashboardOutput) usecase.DashboardOutput {
	size := queryInt(r, "pageSize", 0)
	if size <= 0 || out.Error != "" {
		return out
	}
	out.Proposals, out.Page, out.TotalPages = usecase.Paginate(out.Proposals, queryInt(r, "page", 1), size)
	return out
}

func (h *DashboardHandler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := recordParams(w, r)
	if !ok {
		return
	}
	draft, err := h.dashboard.EditDraft(r.Context(), kind, id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DraftResponse{Kind: kind, ID: id, Values: draft.Values()})
}

func (h *DashboardHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := recordParams(w, r)
	if !ok {
		return
	}
	draft, err := draftFromRequest(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "Invalid form data")
		return
	}
	h.respond(w, func() (*usecase.MutationOutput, error) {
		return h.dashboard.Edit(r.Context(), kind, id, draft)
	})
}

func (h *DashboardHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := recordParams(w, r)
	if !ok {
		return
	}

	var req StatusRequest
	if wantsJSONBody(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
			return
		}
	} else {
		req.Status = r.FormValue("status")
	}

	h.respond(w, func() (*usecase.MutationOutput, error) {
		return h.dashboard.SetStatus(r.Context(), kind, id, req.Status)
	})
}

func (h *DashboardHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := recordParams(w, r)
	if !ok {
		return
	}
	h.respond(w, func() (*usecase.MutationOutput, error) {
		return h.dashboard.Delete(r.Context(), kind, id)
	})
}

func (h *DashboardHandler) HandleMutationState(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := recordParams(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.dashboard.MutationState(kind, id))
}

func (h *DashboardHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"statuses":           entity.StatusOptions,
		"onboardingServices": entity.OnboardingServices,
		"prospectServices":   entity.ProspectServices,
		"paymentTerms":       entity.PaymentTermsOptions,
		"businessTypes":      entity.BusinessTypes,
		"budgetFeels":        entity.BudgetFeels,
		"followUpTypes":      entity.FollowUpTypes,
	})
}

// respond renders a mutation result. Failures keep the MutationOutput shape
// the dashboard shows inline.
func (h *DashboardHandler) respond(w http.ResponseWriter, fn func() (*usecase.MutationOutput, error)) {
	out, err := fn()
	if err == nil {
		writeJSON(w, http.StatusOK, out)
		return
	}
	code := usecase.ErrorCode(err)
	res := usecase.MutationOutput{Error: err.Error()}
	if code == "" {
		res.Error = "Unexpected error"
	}
	var de *usecase.DomainError
	if errors.As(err, &de) {
		res.Message = de.Message
		res.Errors = de.Fields
	}
	writeJSON(w, statusFor(code), res)
}

func recordParams(w http.ResponseWriter, r *http.Request) (entity.Kind, string, bool) {
	kind, err := entity.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidKind, err.Error())
		return "", "", false
	}
	return kind, strings.TrimSpace(chi.URLParam(r, "id")), true
}

func wantsJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

type dashboardPage struct {
	Identity *session.Identity
	Filter   usecase.Filter
	Statuses []string
	Output   usecase.DashboardOutput
}

// HandlePage renders the protected dashboard screen.
func (h *DashboardHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)
	out := h.dashboard.View(r.Context(), f)
	render(w, http.StatusOK, "dashboard.html", dashboardPage{
		Identity: session.FromContext(r.Context()).Identity(),
		Filter:   f,
		Statuses: entity.StatusOptions,
		Output:   paginate(r, out),
	})
}
