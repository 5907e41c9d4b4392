package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sclayai/proposal-intake/internal/entity"
)

// ViewModel is the kind-agnostic row shown on the dashboard.
type ViewModel struct {
	ID            string        `json:"id"`
	Kind          entity.Kind   `json:"kind"`
	ContactLabel  string        `json:"contact"`
	BusinessLabel string        `json:"business"`
	CategoryLabel string        `json:"category"`
	LocationLabel string        `json:"location"`
	SubmittedAt   time.Time     `json:"submittedAt"`
	Status        string        `json:"status"`
	Services      []string      `json:"services"`
	Record        entity.Record `json:"record"`
}

func onboardingView(o *entity.Onboarding) ViewModel {
	return ViewModel{
		ID:            o.ID,
		Kind:          entity.KindOnboarding,
		ContactLabel:  o.ClientName,
		BusinessLabel: o.BusinessName,
		CategoryLabel: o.IndustryNiche,
		LocationLabel: o.Location,
		SubmittedAt:   o.SubmittedAt,
		Status:        entity.StatusOrDefault(o.Status),
		Services:      o.ServicesOffered,
		Record:        o,
	}
}

func prospectView(p *entity.Prospect) ViewModel {
	return ViewModel{
		ID:            p.ID,
		Kind:          entity.KindProspect,
		ContactLabel:  p.DisplayName(),
		BusinessLabel: p.BusinessName,
		CategoryLabel: p.BusinessType,
		LocationLabel: p.CityState,
		SubmittedAt:   p.SubmittedAt,
		Status:        entity.StatusOrDefault(p.Status),
		Services:      p.ServicesInterested,
		Record:        p,
	}
}

// Merge builds the unified list: onboarding rows, then prospect rows, stably
// sorted newest first so equal timestamps keep store order.
func Merge(onboarding []entity.Onboarding, prospects []entity.Prospect) []ViewModel {
	items := make([]ViewModel, 0, len(onboarding)+len(prospects))
	for i := range onboarding {
		items = append(items, onboardingView(&onboarding[i]))
	}
	for i := range prospects {
		items = append(items, prospectView(&prospects[i]))
	}
	slices.SortStableFunc(items, func(a, b ViewModel) int {
		return b.SubmittedAt.Compare(a.SubmittedAt)
	})
	return items
}

// Filter narrows the cached list. Empty or "all" disables a criterion.
type Filter struct {
	Query  string
	Type   string
	Status string
}

func (f Filter) Match(v ViewModel) bool {
	if t := strings.TrimSpace(f.Type); t != "" && !strings.EqualFold(t, "all") {
		kind, err := entity.ParseKind(t)
		if err != nil || kind != v.Kind {
			return false
		}
	}
	if s := strings.TrimSpace(f.Status); s != "" && !strings.EqualFold(s, "all") {
		if !strings.EqualFold(s, v.Status) {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(v.ContactLabel), q) ||
			strings.Contains(strings.ToLower(v.BusinessLabel), q) ||
			strings.Contains(strings.ToLower(v.CategoryLabel), q)
	}
	return true
}

func (f Filter) Apply(items []ViewModel) []ViewModel {
	out := make([]ViewModel, 0, len(items))
	for _, v := range items {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

type Snapshot struct {
	Items     []ViewModel
	FetchedAt time.Time
}

// DashboardOutput is the aggregate read. Error is set when the fetch failed,
// in which case the lists are empty.
type DashboardOutput struct {
	Proposals       []ViewModel `json:"proposals"`
	Total           int         `json:"total"`
	OnboardingCount int         `json:"onboardingCount"`
	ProspectCount   int         `json:"prospectCount"`
	FetchedAt       *time.Time  `json:"fetchedAt,omitempty"`
	Page            int         `json:"page,omitempty"`
	TotalPages      int         `json:"totalPages,omitempty"`
	Error           string      `json:"error,omitempty"`
}

// Paginate cuts out page (1-based) of size items and reports the page count.
// size <= 0 returns everything as a single page; out-of-range pages clamp.
func Paginate(items []ViewModel, page, size int) ([]ViewModel, int, int) {
	if size <= 0 {
		return items, 1, 1
	}
	pages := (len(items) + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	page = max(1, min(page, pages))
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end], page, pages
}

type MutationPhase string

const (
	PhaseIdle       MutationPhase = "idle"
	PhasePending    MutationPhase = "pending"
	PhaseRefreshing MutationPhase = "refreshing"
	PhaseFailed     MutationPhase = "failed"
)

type MutationState struct {
	Phase     MutationPhase `json:"phase"`
	LastError string        `json:"lastError,omitempty"`
}

// Dashboard owns a read-only cached copy of both tables. Mutations go to the
// repositories and are followed by a full refetch; the cache is only ever
// replaced wholesale.
type Dashboard struct {
	onboarding entity.OnboardingRepository
	prospects  entity.ProspectRepository
	metrics    MetricsRecorder
	logger     *zap.Logger

	mu       sync.RWMutex
	snapshot *Snapshot

	stateMu   sync.Mutex
	mutations map[string]MutationState
}

func NewDashboard(onboarding entity.OnboardingRepository, prospects entity.ProspectRepository, metrics MetricsRecorder, logger *zap.Logger) *Dashboard {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{
		onboarding: onboarding,
		prospects:  prospects,
		metrics:    metrics,
		logger:     logger,
		mutations:  make(map[string]MutationState),
	}
}

// FetchAll reads both tables concurrently and swaps in the merged snapshot.
// A failed fetch leaves the previous snapshot in place.
func (d *Dashboard) FetchAll(ctx context.Context) (*Snapshot, error) {
	var (
		onboarding []entity.Onboarding
		prospects  []entity.Prospect
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		onboarding, err = d.onboarding.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		prospects, err = d.prospects.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		d.logger.Error("failed to fetch proposals", zap.Error(err))
		return nil, err
	}

	snap := &Snapshot{Items: Merge(onboarding, prospects), FetchedAt: time.Now()}
	d.mu.Lock()
	d.snapshot = snap
	d.mu.Unlock()
	return snap, nil
}

// Cached returns the last snapshot, or nil before the first fetch.
func (d *Dashboard) Cached() *Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// View fetches both tables and returns the filtered dashboard. Every call
// reads the store; the snapshot only serves record lookups.
func (d *Dashboard) View(ctx context.Context, f Filter) DashboardOutput {
	snap, err := d.FetchAll(ctx)
	if err != nil {
		return DashboardOutput{Proposals: []ViewModel{}, Error: storeMessage(err)}
	}

	out := DashboardOutput{Proposals: f.Apply(snap.Items), FetchedAt: &snap.FetchedAt}
	out.Total = len(out.Proposals)
	for _, v := range out.Proposals {
		switch v.Kind {
		case entity.KindOnboarding:
			out.OnboardingCount++
		case entity.KindProspect:
			out.ProspectCount++
		}
	}
	return out
}

// Lookup finds a record in the cached snapshot.
func (d *Dashboard) Lookup(kind entity.Kind, id string) (entity.Record, bool) {
	snap := d.Cached()
	if snap == nil {
		return nil, false
	}
	for _, v := range snap.Items {
		if v.Kind == kind && v.ID == id {
			return v.Record, true
		}
	}
	return nil, false
}

// EditDraft returns the prefilled edit form for a record.
func (d *Dashboard) EditDraft(ctx context.Context, kind entity.Kind, id string) (*Draft, error) {
	if strings.TrimSpace(id) == "" {
		return nil, missingID()
	}
	rec, ok := d.Lookup(kind, id)
	if !ok {
		if _, err := d.FetchAll(ctx); err != nil {
			return nil, &TechnicalError{Code: CodeDatabase, Message: "Error loading proposal: " + storeMessage(err), Err: err}
		}
		if rec, ok = d.Lookup(kind, id); !ok {
			return nil, &DomainError{Code: CodeNotFound, Message: "Proposal not found", Err: entity.ErrNotFound}
		}
	}
	return DraftFromRecord(rec), nil
}

func (d *Dashboard) EditOnboarding(ctx context.Context, id string, draft *Draft) (*MutationOutput, error) {
	in := draft.OnboardingInput()
	if errs := ValidateOnboardingInput(in); len(errs) > 0 {
		return nil, &DomainError{Code: CodeValidation, Message: "Validation failed. Please check the form for errors.", Fields: errs}
	}
	record := MapOnboarding(in)
	err := d.mutate(ctx, entity.KindOnboarding, id, "edit", func(ctx context.Context) error {
		return d.onboarding.Update(ctx, id, &record)
	})
	if err != nil {
		return nil, err
	}
	return &MutationOutput{Message: "Onboarding proposal updated successfully!", Success: true}, nil
}

func (d *Dashboard) EditProspect(ctx context.Context, id string, draft *Draft) (*MutationOutput, error) {
	in := draft.ProspectInput()
	if errs := ValidateProspectInput(in); len(errs) > 0 {
		return nil, &DomainError{Code: CodeValidation, Message: "Validation failed. Please check the form for errors.", Fields: errs}
	}
	record := MapProspect(in)
	err := d.mutate(ctx, entity.KindProspect, id, "edit", func(ctx context.Context) error {
		return d.prospects.Update(ctx, id, &record)
	})
	if err != nil {
		return nil, err
	}
	return &MutationOutput{Message: "Prospect proposal updated successfully!", Success: true}, nil
}

// Edit dispatches to the kind-specific edit.
func (d *Dashboard) Edit(ctx context.Context, kind entity.Kind, id string, draft *Draft) (*MutationOutput, error) {
	switch kind {
	case entity.KindOnboarding:
		return d.EditOnboarding(ctx, id, draft)
	case entity.KindProspect:
		return d.EditProspect(ctx, id, draft)
	}
	return nil, invalidKind(kind)
}

func (d *Dashboard) SetStatus(ctx context.Context, kind entity.Kind, id, status string) (*MutationOutput, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		fields := FieldErrors{}
		fields.Add("status", "Status is required")
		return nil, &DomainError{Code: CodeValidation, Message: "Status is required", Fields: fields}
	}

	var op func(context.Context) error
	switch kind {
	case entity.KindOnboarding:
		op = func(ctx context.Context) error { return d.onboarding.UpdateStatus(ctx, id, status) }
	case entity.KindProspect:
		op = func(ctx context.Context) error { return d.prospects.UpdateStatus(ctx, id, status) }
	default:
		return nil, invalidKind(kind)
	}
	if err := d.mutate(ctx, kind, id, "status", op); err != nil {
		return nil, err
	}
	return &MutationOutput{Message: "Status updated to " + status, Success: true}, nil
}

func (d *Dashboard) Delete(ctx context.Context, kind entity.Kind, id string) (*MutationOutput, error) {
	var (
		op    func(context.Context) error
		label string
	)
	switch kind {
	case entity.KindOnboarding:
		op = func(ctx context.Context) error { return d.onboarding.Delete(ctx, id) }
		label = "Onboarding"
	case entity.KindProspect:
		op = func(ctx context.Context) error { return d.prospects.Delete(ctx, id) }
		label = "Prospect"
	default:
		return nil, invalidKind(kind)
	}
	if err := d.mutate(ctx, kind, id, "delete", op); err != nil {
		return nil, err
	}
	return &MutationOutput{Message: label + " proposal deleted successfully!", Success: true}, nil
}

// MutationState reports where the latest mutation of a record stands.
func (d *Dashboard) MutationState(kind entity.Kind, id string) MutationState {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	if st, ok := d.mutations[mutationKey(kind, id)]; ok {
		return st
	}
	return MutationState{Phase: PhaseIdle}
}

// mutate runs idle -> pending -> refreshing -> idle, or pending -> failed.
// A failed state keeps its error until the next mutation of the record
// starts. An empty id never reaches the repository.
func (d *Dashboard) mutate(ctx context.Context, kind entity.Kind, id, action string, op func(context.Context) error) error {
	if strings.TrimSpace(id) == "" {
		d.metrics.RecordMutation(kind, action, "invalid")
		return missingID()
	}

	d.setPhase(kind, id, PhasePending, "")
	if err := op(ctx); err != nil {
		d.logger.Error("proposal mutation failed",
			zap.String("kind", string(kind)),
			zap.String("id", id),
			zap.String("action", action),
			zap.Error(err),
		)
		d.metrics.RecordMutation(kind, action, "failed")
		d.setPhase(kind, id, PhaseFailed, err.Error())
		return mutationError(kind, action, err)
	}

	d.metrics.RecordMutation(kind, action, "ok")
	d.setPhase(kind, id, PhaseRefreshing, "")
	if _, err := d.FetchAll(ctx); err != nil {
		d.logger.Warn("refresh after mutation failed", zap.Error(err))
	}
	d.setPhase(kind, id, PhaseIdle, "")
	return nil
}

func (d *Dashboard) setPhase(kind entity.Kind, id string, phase MutationPhase, lastErr string) {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	d.mutations[mutationKey(kind, id)] = MutationState{Phase: phase, LastError: lastErr}
}

func mutationKey(kind entity.Kind, id string) string {
	return string(kind) + ":" + id
}

func missingID() error {
	return &DomainError{Code: CodeMissingID, Message: "Proposal ID is required", Err: entity.ErrMissingIdentifier}
}

func invalidKind(kind entity.Kind) error {
	return &DomainError{Code: CodeInvalidKind, Message: "unknown proposal type " + string(kind)}
}

func mutationError(kind entity.Kind, action string, err error) error {
	switch {
	case errors.Is(err, entity.ErrMissingIdentifier):
		return missingID()
	case errors.Is(err, entity.ErrNotFound):
		return &DomainError{Code: CodeNotFound, Message: "Proposal not found", Err: err}
	}
	verb := map[string]string{"edit": "updating", "status": "updating status of", "delete": "deleting"}[action]
	return &TechnicalError{
		Code:    CodeDatabase,
		Message: "Error " + verb + " " + string(kind) + " proposal: " + storeMessage(err),
		Err:     err,
	}
}
