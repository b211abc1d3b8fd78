package scenario

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/roicalc/internal/db"
	"github.com/Simplici0/roicalc/internal/migrations"
	"github.com/Simplici0/roicalc/internal/roi"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "scenario-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.Up(database))
	return NewStore(database)
}

func fixedClock(ts ...string) func() time.Time {
	i := 0
	return func() time.Time {
		parsed, _ := time.Parse(timeLayout, ts[i])
		i++
		return parsed
	}
}

func TestSaveAndGetReadsSnapshotWithoutRecalculation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profile := roi.DefaultProfile()
	snapshot := roi.Compute(profile)
	snapshot.Benefits.TotalAnnual = 999.99 // differs from what Compute would return

	saved, err := store.Save(ctx, Scenario{Title: "  Acme Capital ", Notes: "first call", CreatedBy: "rep@securli.example", Profile: profile, Result: snapshot})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Acme Capital", saved.Title)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)

	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Acme Capital", got.Title)
	assert.Equal(t, "first call", got.Notes)
	assert.Equal(t, "rep@securli.example", got.CreatedBy)
	assert.Equal(t, profile, got.Profile)
	assert.Equal(t, 999.99, got.Result.Benefits.TotalAnnual)
	assert.Equal(t, snapshot, got.Result)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
}

func TestSaveKeepsInfinitePayback(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, Scenario{Title: "Empty", Result: roi.Compute(roi.FirmProfile{})})
	require.NoError(t, err)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got.Result.Analysis.PaybackMonths, 1))
}

func TestSaveRequiresTitle(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(context.Background(), Scenario{Title: "   "})
	assert.Error(t, err)
}

func TestListOrdersByDateDescAndFilters(t *testing.T) {
	store := newTestStore(t)
	store.now = fixedClock("2024-01-01 10:00:00", "2024-01-03 12:00:00", "2024-01-02 11:00:00")
	ctx := context.Background()

	for _, sc := range []Scenario{
		{Title: "Primera", Notes: "broker dealer"},
		{Title: "Tercera", Notes: "urgente"},
		{Title: "Segunda", Notes: "RIA, broker network"},
	} {
		sc.Profile = roi.DefaultProfile()
		sc.Result = roi.Compute(sc.Profile)
		_, err := store.Save(ctx, sc)
		require.NoError(t, err)
	}

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Tercera", "Segunda", "Primera"}, []string{all[0].Title, all[1].Title, all[2].Title})
	assert.Equal(t, "2024-01-03 12:00:00", all[0].CreatedAt)
	assert.InDelta(t, 2203466.3461538465, all[0].TotalAnnualBenefits, 1e-6)
	assert.InDelta(t, 5855.31444906445, all[0].Year1ROI, 1e-6)

	byTitle, err := store.List(ctx, "Terc")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Tercera", byTitle[0].Title)

	byNotes, err := store.List(ctx, "broker")
	require.NoError(t, err)
	assert.Len(t, byNotes, 2)
}

func TestGetUnknownID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "6f1c1c1e-3c1a-4c33-9a57-1f3f0b3a2d10")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, Scenario{Title: "Demo", Result: roi.Compute(roi.DefaultProfile())})
	require.NoError(t, err)

	n, err := store.Count(ctx, "Demo")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Delete(ctx, saved.ID))
	assert.ErrorIs(t, store.Delete(ctx, saved.ID), ErrNotFound)

	n, err = store.Count(ctx, "Demo")
	require.NoError(t, err)
	assert.Zero(t, n)
}
