package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/eventresults/models"
	"github.com/padraicbc/eventresults/testutil"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newStore(t *testing.T) (*Store, testutil.Fixture) {
	bdb := testutil.NewDB(t)
	return New(bdb), testutil.Fixture{T: t, DB: bdb}
}

func eventNames(events []models.Event) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name
	}
	return names
}

func TestListEventsOrderAndFilter(t *testing.T) {
	s, fx := newStore(t)
	ctx := context.Background()

	fx.Event("Winter Show", day("2026-01-10"), models.StatusPublished)
	fx.Event("Spring Cup", day("2026-04-02"), models.StatusDraft)
	fx.Event("Summer Derby", day("2026-07-15"), models.StatusPublished)

	all, err := s.ListEvents(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Summer Derby", "Spring Cup", "Winter Show"}, eventNames(all))

	published, err := s.ListEvents(ctx, models.StatusPublished)
	require.NoError(t, err)
	assert.Equal(t, []string{"Summer Derby", "Winter Show"}, eventNames(published))
	for _, e := range published {
		assert.Equal(t, models.StatusPublished, e.Status)
	}
}

func TestListEventsSameDateKeepsCreationOrder(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	date := day("2026-05-01")
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, name := range []string{"Morning", "Noon", "Evening"} {
		require.NoError(t, s.CreateEvent(ctx, &models.Event{
			Name:      name,
			EventDate: date,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := s.ListEvents(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Morning", "Noon", "Evening"}, eventNames(all))
}

func TestListEventsEmpty(t *testing.T) {
	s, _ := newStore(t)

	events, err := s.ListEvents(context.Background(), models.StatusPublished)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestCreateEventDefaults(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	e := &models.Event{Name: "Spring Cup", EventDate: day("2026-04-02")}
	require.NoError(t, s.CreateEvent(ctx, e))
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, models.StatusDraft, e.Status)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)

	got, err := s.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring Cup", got.Name)
	assert.Equal(t, models.StatusDraft, got.Status)
	assert.True(t, got.EventDate.Equal(e.EventDate))
}

func TestCreateEventValidation(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	var verr *models.ValidationError

	err := s.CreateEvent(ctx, &models.Event{EventDate: day("2026-04-02")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	err = s.CreateEvent(ctx, &models.Event{Name: "x", EventDate: day("2026-04-02"), Status: "archived"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestGetEventNotFound(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.GetEvent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetEventStatus(t *testing.T) {
	s, fx := newStore(t)
	ctx := context.Background()
	e := fx.Event("Spring Cup", day("2026-04-02"), models.StatusDraft)

	at := time.Date(2026, 4, 3, 12, 30, 0, 0, time.UTC)
	require.NoError(t, s.SetEventStatus(ctx, e.ID, models.StatusPublished, at))

	got, err := s.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, got.Status)
	assert.True(t, got.UpdatedAt.Equal(at), "updated_at %s, want %s", got.UpdatedAt, at)
	assert.True(t, got.CreatedAt.Equal(e.CreatedAt))
	assert.Equal(t, e.Name, got.Name)

	err = s.SetEventStatus(ctx, uuid.New(), models.StatusDraft, at)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResultsForEvent(t *testing.T) {
	s, fx := newStore(t)
	ctx := context.Background()

	e := fx.Event("Spring Cup", day("2026-04-02"), models.StatusPublished)
	other := fx.Event("Other", day("2026-04-09"), models.StatusPublished)
	novice := fx.Class(e.ID, "Novice Test", "Novice")
	elem := fx.Class(e.ID, "Elementary Test", "Elementary")

	p1 := fx.Pair("Dana Levi", "Storm")
	p2 := fx.Pair("Noa Cohen", "Blaze")

	fx.Result(e.ID, novice.ID, p1.ID, "68.50", true)
	fx.Result(e.ID, novice.ID, p2.ID, "71.25", false)
	fx.Result(e.ID, elem.ID, p1.ID, "65.00", true)
	fx.Result(other.ID, fx.Class(other.ID, "X", "Y").ID, p1.ID, "50", true)

	views, err := s.ResultsForEvent(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "Elementary Test", views[0].ClassName)
	assert.Equal(t, "Elementary", views[0].ClassLevel)

	assert.Equal(t, "Novice Test", views[1].ClassName)
	assert.Equal(t, "Noa Cohen", views[1].RiderName)
	assert.Equal(t, "Blaze", views[1].HorseName)
	assert.True(t, views[1].FinalScorePct.Equal(decimal.RequireFromString("71.25")))
	assert.False(t, views[1].Eligible)

	assert.Equal(t, "Dana Levi", views[2].RiderName)
	assert.Equal(t, "Storm", views[2].HorseName)
	assert.True(t, views[2].Eligible)
}

func TestResultsForEventEmpty(t *testing.T) {
	s, fx := newStore(t)
	e := fx.Event("Spring Cup", day("2026-04-02"), models.StatusPublished)

	views, err := s.ResultsForEvent(context.Background(), e.ID)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestResultsForEventBrokenReferences(t *testing.T) {
	s, fx := newStore(t)
	ctx := context.Background()
	e := fx.Event("Spring Cup", day("2026-04-02"), models.StatusPublished)
	class := fx.Class(e.ID, "Novice Test", "Novice")

	// pair whose horse row is missing
	p := fx.Pair("Dana Levi", "Storm")
	_, err := fx.DB.NewDelete().TableExpr("horses").Where("id = ?", p.HorseID).Exec(ctx)
	require.NoError(t, err)
	fx.Result(e.ID, class.ID, p.ID, "70", true)

	// class, rider and horse all missing
	fx.Result(e.ID, uuid.New(), fx.OrphanPair().ID, "60", true)

	views, err := s.ResultsForEvent(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byScore := map[string]models.ResultView{}
	for _, v := range views {
		byScore[v.FinalScorePct.StringFixed(0)] = v
	}

	withRider := byScore["70"]
	assert.Equal(t, "Dana Levi", withRider.RiderName)
	assert.Equal(t, models.Unavailable, withRider.HorseName)
	assert.Equal(t, "Novice Test", withRider.ClassName)

	orphan := byScore["60"]
	assert.Equal(t, models.Unavailable, orphan.ClassName)
	assert.Equal(t, models.Unavailable, orphan.RiderName)
	assert.Equal(t, models.Unavailable, orphan.HorseName)
}

func TestResultsForEventMissingClassSortsLast(t *testing.T) {
	s, fx := newStore(t)
	ctx := context.Background()
	e := fx.Event("Spring Cup", day("2026-04-02"), models.StatusPublished)
	class := fx.Class(e.ID, "Novice Test", "Novice")

	fx.Result(e.ID, uuid.New(), fx.Pair("Sam Ortiz", "Juniper").ID, "90", true)
	fx.Result(e.ID, class.ID, fx.Pair("Dana Levi", "Storm").ID, "60", true)

	views, err := s.ResultsForEvent(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Novice Test", views[0].ClassName)
	assert.Equal(t, models.Unavailable, views[1].ClassName)
	assert.Equal(t, "Sam Ortiz", views[1].RiderName)
}

func TestCreateResultConsistency(t *testing.T) {
	s, fx := newStore(t)
	ctx := context.Background()

	e := fx.Event("Spring Cup", day("2026-04-02"), models.StatusDraft)
	other := fx.Event("Autumn Cup", day("2026-10-02"), models.StatusDraft)
	foreignClass := fx.Class(other.ID, "Novice Test", "Novice")
	ownClass := fx.Class(e.ID, "Novice Test", "Novice")
	p := fx.Pair("Dana Levi", "Storm")

	err := s.CreateResult(ctx, &models.Result{
		EventID: e.ID, ClassID: foreignClass.ID, PairID: p.ID,
		FinalScorePct: decimal.NewFromInt(70), Eligible: true,
	})
	assert.ErrorIs(t, err, models.ErrInconsistentResult)

	var verr *models.ValidationError
	err = s.CreateResult(ctx, &models.Result{
		EventID: e.ID, ClassID: uuid.New(), PairID: p.ID, FinalScorePct: decimal.NewFromInt(70),
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "class_id", verr.Field)

	err = s.CreateResult(ctx, &models.Result{
		EventID: e.ID, ClassID: ownClass.ID, PairID: p.ID, FinalScorePct: decimal.NewFromInt(101),
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "final_score_pct", verr.Field)

	views, err := s.ResultsForEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, views, "rejected results must not be written")

	r := &models.Result{
		EventID: e.ID, ClassID: ownClass.ID, PairID: p.ID,
		FinalScorePct: decimal.RequireFromString("68.456"), Eligible: true,
	}
	require.NoError(t, s.CreateResult(ctx, r))
	assert.Equal(t, "68.46", r.FinalScorePct.StringFixed(2))

	views, err = s.ResultsForEvent(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, r.ID, views[0].ID)
}

func TestInconsistentResults(t *testing.T) {
	s, fx := newStore(t)
	ctx := context.Background()

	e := fx.Event("Spring Cup", day("2026-04-02"), models.StatusDraft)
	other := fx.Event("Autumn Cup", day("2026-10-02"), models.StatusDraft)
	p := fx.Pair("Dana Levi", "Storm")

	fx.Result(e.ID, fx.Class(e.ID, "A", "1").ID, p.ID, "70", true)
	bad := fx.Result(e.ID, fx.Class(other.ID, "B", "2").ID, p.ID, "70", true)

	ids, err := s.InconsistentResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bad.ID}, ids)
}

func TestRunInTxRollsBack(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.RunInTx(ctx, func(ctx context.Context, tx *Store) error {
		if err := tx.CreateEvent(ctx, &models.Event{Name: "Ghost", EventDate: day("2026-04-02")}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	events, err := s.ListEvents(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestProfiles(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	p := &models.UserProfile{Email: " Admin@Example.com ", Role: models.RoleUser, PasswordHash: "h1"}
	require.NoError(t, s.SaveProfile(ctx, p))
	assert.Equal(t, "admin@example.com", p.Email)
	firstID := p.UserID

	got, err := s.GetProfileByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, firstID, got.UserID)
	assert.Equal(t, models.RoleUser, got.Role)

	// saving the same email again promotes the existing profile
	require.NoError(t, s.SaveProfile(ctx, &models.UserProfile{Email: "admin@example.com", Role: models.RoleAdmin, PasswordHash: "h2"}))

	got, err = s.GetProfile(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.Equal(t, "h2", got.PasswordHash)

	_, err = s.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)

	var verr *models.ValidationError
	err = s.SaveProfile(ctx, &models.UserProfile{Email: "x@example.com", Role: "root", PasswordHash: "h"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)
}
