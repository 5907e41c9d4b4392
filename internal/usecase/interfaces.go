package usecase

import (
	"context"

	"github.com/sclayai/proposal-intake/internal/entity"
)

// Forwarder mirrors a validated submission to the outbound webhook, directly
// or through a queue.
type Forwarder interface {
	Forward(ctx context.Context, payload ForwardPayload) error
}

// EmailService tells the team a new intake arrived.
type EmailService interface {
	SendIntakeNotice(kind entity.Kind, businessName, contactName string) error
}

// MetricsRecorder receives outcome counters. Outcomes are short labels such
// as "ok", "invalid" or "failed".
type MetricsRecorder interface {
	RecordSubmission(kind entity.Kind, outcome string)
	RecordForward(kind entity.Kind, outcome string)
	RecordMutation(kind entity.Kind, action, outcome string)
}

type noopMetrics struct{}

func (noopMetrics) RecordSubmission(entity.Kind, string) {}
func (noopMetrics) RecordForward(entity.Kind, string) {}
func (noopMetrics) RecordMutation(entity.Kind, string, string) {}
