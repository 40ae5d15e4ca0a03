package tracking

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/navneetha-rajan/mindmate/internal/data/repos/query"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/testutil"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
)

func TestMoodEntryRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewMoodEntryRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, db, "moody")
	if _, ok, err := repo.AverageScore(dbc, u.ID); err != nil || ok {
		t.Fatalf("AverageScore(empty): ok=%v err=%v", ok, err)
	}

	base := time.Now().UTC().Add(-3 * 24 * time.Hour)
	for i, score := range []float64{4, 6, 8} {
		testutil.SeedMoodEntry(t, ctx, db, u.ID, score, base.Add(time.Duration(i)*24*time.Hour))
	}

	avg, ok, err := repo.AverageScore(dbc, u.ID)
	if err != nil || !ok {
		t.Fatalf("AverageScore: ok=%v err=%v", ok, err)
	}
	if math.Abs(avg-6) > 1e-9 {
		t.Fatalf("AverageScore: expected 6, got %v", avg)
	}

	recent, err := repo.ListRecent(dbc, u.ID, 2)
	if err != nil || len(recent) != 2 || recent[0].MoodScore != 6 || recent[1].MoodScore != 8 {
		t.Fatalf("ListRecent: %v %+v", err, recent)
	}
	page, err := repo.List(dbc, u.ID, query.Filter{Skip: 1, Limit: 1})
	if err != nil || len(page) != 1 || page[0].MoodScore != 6 {
		t.Fatalf("List(page): %v %+v", err, page)
	}
	since, err := repo.ListSince(dbc, u.ID, base.Add(time.Hour))
	if err != nil || len(since) != 2 {
		t.Fatalf("ListSince: %v len=%d", err, len(since))
	}
}

func TestHabitEntryRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewHabitEntryRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, db, "habits")
	now := time.Now().UTC()
	testutil.SeedHabitEntry(t, ctx, db, u.ID, "exercise", 30, now.Add(-48*time.Hour))
	testutil.SeedHabitEntry(t, ctx, db, u.ID, "sleep", 7, now.Add(-time.Hour))

	listed, err := repo.List(dbc, u.ID, query.Filter{To: testutil.PtrTime(now.Add(-24 * time.Hour))})
	if err != nil || len(listed) != 1 || listed[0].HabitName != "exercise" {
		t.Fatalf("List(to): %v %+v", err, listed)
	}
	since, err := repo.ListSince(dbc, u.ID, now.Add(-72*time.Hour))
	if err != nil || len(since) != 2 || since[0].HabitName != "exercise" {
		t.Fatalf("ListSince: %v %+v", err, since)
	}
	if n, err := repo.Count(dbc, u.ID); err != nil || n != 2 {
		t.Fatalf("Count: expected 2, got %d (%v)", n, err)
	}
}
