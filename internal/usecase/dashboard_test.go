package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sclayai/proposal-intake/internal/entity"
)

var (
	t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(2 * time.Hour)
)

func sampleOnboarding() []entity.Onboarding {
	return []entity.Onboarding{
		{ID: "o-1", ClientName: "Jane Doe", BusinessName: "Acme", IndustryNiche: "Retail", SubmittedAt: t1},
		{ID: "o-2", ClientName: "Bob", BusinessName: "Bolt", IndustryNiche: "Apex Fitness", Status: "Contacted", SubmittedAt: t0},
	}
}

func sampleProspects() []entity.Prospect {
	return []entity.Prospect{
		{ID: "p-1", ContactName: "Ann Lee", BusinessName: "Apex Roofing", BusinessType: "Roofer", SubmittedAt: t2},
		{ID: "p-2", FirstName: "Tom", LastName: "Ray", BusinessName: "Tow Co", BusinessType: "Towing", SubmittedAt: t1},
	}
}

func ids(items []ViewModel) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.ID
	}
	return out
}

func TestMergeNewestFirstStable(t *testing.T) {
	items := Merge(sampleOnboarding(), sampleProspects())

	// o-1 and p-2 share a timestamp; onboarding rows come first on ties
	assert.Equal(t, []string{"p-1", "o-1", "p-2", "o-2"}, ids(items))
	assert.Equal(t, entity.KindProspect, items[0].Kind)
	assert.Equal(t, "New", items[1].Status)
	assert.Equal(t, "Contacted", items[3].Status)
	assert.Equal(t, "Tom Ray", items[2].ContactLabel)
	assert.Equal(t, "Roofer", items[0].CategoryLabel)
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
}

func TestFilter(t *testing.T) {
	items := Merge(sampleOnboarding(), sampleProspects())

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no criteria", Filter{}, []string{"p-1", "o-1", "p-2", "o-2"}},
		{"query matches business and category", Filter{Query: "apex"}, []string{"p-1", "o-2"}},
		{"query matches contact", Filter{Query: "  JANE "}, []string{"o-1"}},
		{"type", Filter{Type: "prospect"}, []string{"p-1", "p-2"}},
		{"type all", Filter{Type: "all"}, []string{"p-1", "o-1", "p-2", "o-2"}},
		{"unknown type", Filter{Type: "lead"}, []string{}},
		{"status case-insensitive", Filter{Status: "new"}, []string{"p-1", "o-1", "p-2"}},
		{"combined", Filter{Query: "apex", Type: "onboarding", Status: "Contacted"}, []string{"o-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filter.Apply(items)))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := Merge(sampleOnboarding(), sampleProspects())

	page, n, pages := Paginate(items, 2, 3)
	assert.Equal(t, []string{"o-2"}, ids(page))
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, pages)

	page, n, _ = Paginate(items, 9, 3)
	assert.Equal(t, 2, n)
	assert.Len(t, page, 1)

	page, n, pages = Paginate(items, 0, 0)
	assert.Len(t, page, 4)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, pages)

	page, n, pages = Paginate(nil, 1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, pages)
}

func newTestDashboard() (*Dashboard, *MockOnboardingRepository, *MockProspectRepository) {
	o := new(MockOnboardingRepository)
	p := new(MockProspectRepository)
	return NewDashboard(o, p, nil, nil), o, p
}

func TestViewCountsAndFetchesEveryTime(t *testing.T) {
	d, o, p := newTestDashboard()
	o.On("ListAll", mock.Anything).Return(sampleOnboarding(), nil)
	p.On("ListAll", mock.Anything).Return(sampleProspects(), nil)

	out := d.View(context.Background(), Filter{})
	again := d.View(context.Background(), Filter{Type: "onboarding"})

	assert.Empty(t, out.Error)
	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 2, out.OnboardingCount)
	assert.Equal(t, 2, out.ProspectCount)
	assert.NotNil(t, out.FetchedAt)
	assert.Equal(t, 2, again.Total)
	assert.Equal(t, 0, again.ProspectCount)
	o.AssertNumberOfCalls(t, "ListAll", 2)
	p.AssertNumberOfCalls(t, "ListAll", 2)
}

func TestFetchFailureKeepsCache(t *testing.T) {
	d, o, p := newTestDashboard()
	o.On("ListAll", mock.Anything).Return(sampleOnboarding(), nil).Once()
	p.On("ListAll", mock.Anything).Return(sampleProspects(), nil).Once()
	_, err := d.FetchAll(context.Background())
	require.NoError(t, err)

	dbErr := &entity.StoreError{Op: "list", Table: "proposals_prospects", Err: errors.New("relation does not exist")}
	o.On("ListAll", mock.Anything).Return(nil, nil)
	p.On("ListAll", mock.Anything).Return(nil, dbErr)

	out := d.View(context.Background(), Filter{})

	assert.Equal(t, "relation does not exist", out.Error)
	assert.Empty(t, out.Proposals)
	assert.NotNil(t, out.Proposals)
	require.NotNil(t, d.Cached())
	assert.Len(t, d.Cached().Items, 4)
}

func TestDeleteWithoutIDNeverReachesStore(t *testing.T) {
	d, o, _ := newTestDashboard()

	out, err := d.Delete(context.Background(), entity.KindOnboarding, "  ")

	assert.Nil(t, out)
	assert.Equal(t, CodeMissingID, ErrorCode(err))
	assert.ErrorIs(t, err, entity.ErrMissingIdentifier)
	o.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteMovesThroughPhases(t *testing.T) {
	d, o, p := newTestDashboard()

	var during, refreshing MutationState
	o.On("Delete", mock.Anything, "o-1").Run(func(mock.Arguments) {
		during = d.MutationState(entity.KindOnboarding, "o-1")
	}).Return(nil)
	o.On("ListAll", mock.Anything).Run(func(mock.Arguments) {
		refreshing = d.MutationState(entity.KindOnboarding, "o-1")
	}).Return(sampleOnboarding()[1:], nil)
	p.On("ListAll", mock.Anything).Return([]entity.Prospect{}, nil)

	out, err := d.Delete(context.Background(), entity.KindOnboarding, "o-1")

	require.NoError(t, err)
	assert.Equal(t, "Onboarding proposal deleted successfully!", out.Message)
	assert.Equal(t, PhasePending, during.Phase)
	assert.Equal(t, PhaseRefreshing, refreshing.Phase)
	assert.Equal(t, MutationState{Phase: PhaseIdle}, d.MutationState(entity.KindOnboarding, "o-1"))
	assert.Equal(t, []string{"o-2"}, ids(d.Cached().Items))
}

func TestMutationFailureKeepsError(t *testing.T) {
	d, _, p := newTestDashboard()
	p.On("UpdateStatus", mock.Anything, "p-1", "Contacted").
		Return(&entity.StoreError{Op: "update status", Table: "proposals_prospects", Err: errors.New("timeout")})

	out, err := d.SetStatus(context.Background(), entity.KindProspect, "p-1", " Contacted ")

	assert.Nil(t, out)
	var te *TechnicalError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "Error updating status of prospect proposal: timeout", te.Message)
	st := d.MutationState(entity.KindProspect, "p-1")
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Contains(t, st.LastError, "timeout")
	p.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestNextMutationClearsFailure(t *testing.T) {
	d, o, p := newTestDashboard()
	p.On("Delete", mock.Anything, "p-1").
		Return(&entity.StoreError{Op: "delete", Table: "proposals_prospects", Err: errors.New("timeout")}).Once()
	p.On("Delete", mock.Anything, "p-1").Return(nil).Once()
	o.On("ListAll", mock.Anything).Return(nil, nil)
	p.On("ListAll", mock.Anything).Return(nil, nil)

	_, err := d.Delete(context.Background(), entity.KindProspect, "p-1")
	require.Error(t, err)
	require.Equal(t, PhaseFailed, d.MutationState(entity.KindProspect, "p-1").Phase)

	_, err = d.Delete(context.Background(), entity.KindProspect, "p-1")

	require.NoError(t, err)
	assert.Equal(t, MutationState{Phase: PhaseIdle}, d.MutationState(entity.KindProspect, "p-1"))
}

func TestMutationNotFound(t *testing.T) {
	d, o, _ := newTestDashboard()
	o.On("UpdateStatus", mock.Anything, "gone", "Closed - Won").
		Return(&entity.StoreError{Op: "update status", Table: "proposals_onboarding", Err: entity.ErrNotFound})

	_, err := d.SetStatus(context.Background(), entity.KindOnboarding, "gone", "Closed - Won")

	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestSetStatusRequiresValue(t *testing.T) {
	d, o, _ := newTestDashboard()

	_, err := d.SetStatus(context.Background(), entity.KindOnboarding, "o-1", "  ")

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{"Status is required"}, de.Fields["status"])
	o.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetStatusSuccess(t *testing.T) {
	d, o, p := newTestDashboard()
	o.On("UpdateStatus", mock.Anything, "o-1", "Proposal Sent").Return(nil)
	o.On("ListAll", mock.Anything).Return(sampleOnboarding(), nil)
	p.On("ListAll", mock.Anything).Return(sampleProspects(), nil)

	out, err := d.SetStatus(context.Background(), entity.KindOnboarding, "o-1", "Proposal Sent")

	require.NoError(t, err)
	assert.Equal(t, "Status updated to Proposal Sent", out.Message)
}

func TestInvalidKind(t *testing.T) {
	d, _, _ := newTestDashboard()

	_, err := d.Delete(context.Background(), entity.Kind("lead"), "x")
	assert.Equal(t, CodeInvalidKind, ErrorCode(err))

	_, err = d.Edit(context.Background(), entity.Kind("lead"), "x", NewDraft())
	assert.Equal(t, CodeInvalidKind, ErrorCode(err))
}

func TestEditValidatesBeforeStore(t *testing.T) {
	d, _, p := newTestDashboard()
	draft := validProspectDraft()
	draft.Set("prospectFollowUpType", "Follow-up call")

	_, err := d.Edit(context.Background(), entity.KindProspect, "p-1", draft)

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeValidation, de.Code)
	p.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestEditProspectStoresMappedRecord(t *testing.T) {
	d, o, p := newTestDashboard()
	p.On("Update", mock.Anything, "p-1", mock.MatchedBy(func(r *entity.Prospect) bool {
		return r.ContactName == "Ann Lee" && r.BusinessName == "Apex Roofing"
	})).Return(nil)
	o.On("ListAll", mock.Anything).Return(nil, nil)
	p.On("ListAll", mock.Anything).Return(sampleProspects(), nil)

	out, err := d.Edit(context.Background(), entity.KindProspect, "p-1", validProspectDraft())

	require.NoError(t, err)
	assert.Equal(t, "Prospect proposal updated successfully!", out.Message)
	p.AssertExpectations(t)
}

func TestEditDraftFromCache(t *testing.T) {
	d, o, p := newTestDashboard()
	o.On("ListAll", mock.Anything).Return(sampleOnboarding(), nil).Once()
	p.On("ListAll", mock.Anything).Return(sampleProspects(), nil).Once()

	draft, err := d.EditDraft(context.Background(), entity.KindProspect, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", draft.Get("prospectFirstName"))
	assert.Equal(t, "Lee", draft.Get("prospectLastName"))

	// second lookup is served from the snapshot
	_, err = d.EditDraft(context.Background(), entity.KindOnboarding, "o-2")
	require.NoError(t, err)
	o.AssertNumberOfCalls(t, "ListAll", 1)
}

func TestEditDraftNotFound(t *testing.T) {
	d, o, p := newTestDashboard()
	o.On("ListAll", mock.Anything).Return(sampleOnboarding(), nil)
	p.On("ListAll", mock.Anything).Return(sampleProspects(), nil)

	_, err := d.EditDraft(context.Background(), entity.KindProspect, "missing")

	assert.Equal(t, CodeNotFound, ErrorCode(err))
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
