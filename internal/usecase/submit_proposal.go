package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sclayai/proposal-intake/internal/entity"
)

const defaultForwardTimeout = 10 * time.Second

type SubmitProposalUseCase struct {
	OnboardingRepo entity.OnboardingRepository
	ProspectRepo   entity.ProspectRepository
	Forwarder      Forwarder
	EmailService   EmailService
	Metrics        MetricsRecorder
	Logger         *zap.Logger
	ForwardTimeout time.Duration

	inflight sync.WaitGroup
}

func NewSubmitProposalUseCase(
	onboardingRepo entity.OnboardingRepository,
	prospectRepo entity.ProspectRepository,
	forwarder Forwarder,
	emailService EmailService,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *SubmitProposalUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitProposalUseCase{
		OnboardingRepo: onboardingRepo,
		ProspectRepo:   prospectRepo,
		Forwarder:      forwarder,
		EmailService:   emailService,
		Metrics:        metrics,
		Logger:         logger,
		ForwardTimeout: defaultForwardTimeout,
	}
}

// SubmitOnboarding validates the draft, mirrors it to the webhook and stores
// it. A webhook failure never changes the returned outcome.
func (uc *SubmitProposalUseCase) SubmitOnboarding(ctx context.Context, d *Draft) (*SubmissionOutput, error) {
	in := d.OnboardingInput()
	if errs := ValidateOnboardingInput(in); len(errs) > 0 {
		uc.Metrics.RecordSubmission(entity.KindOnboarding, "invalid")
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: "Validation failed. Please check the Onboarding form for errors.",
			Fields:  errs,
		}
	}

	uc.forward(ctx, ForwardPayload{FormType: entity.KindOnboarding, OnboardingInput: &in})

	record := MapOnboarding(in)
	id, err := uc.OnboardingRepo.Insert(ctx, &record)
	if err != nil {
		uc.Logger.Error("failed to save onboarding proposal", zap.Error(err))
		uc.Metrics.RecordSubmission(entity.KindOnboarding, "failed")
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "Error saving onboarding data to database: " + storeMessage(err),
			Err:     err,
		}
	}

	uc.Metrics.RecordSubmission(entity.KindOnboarding, "ok")
	uc.Logger.Info("onboarding proposal saved", zap.String("id", id), zap.String("business", record.BusinessName))
	uc.notify(entity.KindOnboarding, record.BusinessName, record.ClientName)

	return &SubmissionOutput{
		ID:            id,
		Message:       "Onboarding data submitted successfully!",
		Success:       true,
		SubmittedData: in,
	}, nil
}

func (uc *SubmitProposalUseCase) SubmitProspect(ctx context.Context, d *Draft) (*SubmissionOutput, error) {
	in := d.ProspectInput()
	if errs := ValidateProspectInput(in); len(errs) > 0 {
		uc.Metrics.RecordSubmission(entity.KindProspect, "invalid")
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: "Validation failed. Please check the Prospects form for errors.",
			Fields:  errs,
		}
	}

	uc.forward(ctx, ForwardPayload{FormType: entity.KindProspect, ProspectInput: &in})

	record := MapProspect(in)
	id, err := uc.ProspectRepo.Insert(ctx, &record)
	if err != nil {
		uc.Logger.Error("failed to save prospect proposal", zap.Error(err))
		uc.Metrics.RecordSubmission(entity.KindProspect, "failed")
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "Error saving prospect data to database: " + storeMessage(err),
			Err:     err,
		}
	}

	uc.Metrics.RecordSubmission(entity.KindProspect, "ok")
	uc.Logger.Info("prospect proposal saved", zap.String("id", id), zap.String("business", record.BusinessName))
	uc.notify(entity.KindProspect, record.BusinessName, record.ContactName)

	return &SubmissionOutput{
		ID:            id,
		Message:       "Prospect data submitted successfully!",
		Success:       true,
		SubmittedData: in,
	}, nil
}

// Wait blocks until every background forward and notice has finished.
func (uc *SubmitProposalUseCase) Wait() {
	uc.inflight.Wait()
}

func (uc *SubmitProposalUseCase) forward(ctx context.Context, payload ForwardPayload) {
	if uc.Forwarder == nil {
		return
	}
	timeout := uc.ForwardTimeout
	if timeout <= 0 {
		timeout = defaultForwardTimeout
	}
	fwdCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)

	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()
		defer cancel()

		if err := uc.Forwarder.Forward(fwdCtx, payload); err != nil {
			uc.Logger.Warn("webhook forward failed",
				zap.String("form_type", string(payload.FormType)),
				zap.Error(err),
			)
			uc.Metrics.RecordForward(payload.FormType, "failed")
			return
		}
		uc.Metrics.RecordForward(payload.FormType, "ok")
	}()
}

func (uc *SubmitProposalUseCase) notify(kind entity.Kind, business, contact string) {
	if uc.EmailService == nil {
		return
	}
	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()
		if err := uc.EmailService.SendIntakeNotice(kind, business, contact); err != nil {
			uc.Logger.Warn("intake notice email failed", zap.String("form_type", string(kind)), zap.Error(err))
		}
	}()
}

// storeMessage returns the driver's message without the repository prefix.
func storeMessage(err error) string {
	var se *entity.StoreError
	if errors.As(err, &se) && se.Err != nil {
		return se.Err.Error()
	}
	return err.Error()
}
