package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/navneetha-rajan/mindmate/internal/data/repos/testutil"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/planner"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
)

func TestPlanCreateAndCurrent(t *testing.T) {
	f := newFixture(t)
	ctx, user := f.as(t, "planner")

	_, err := f.plan.Current(ctx)
	wantStatus(t, err, http.StatusNotFound)

	gen, err := f.plan.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p := gen.Plan
	if p.UserID != user.ID || p.Status != types.PlanActive {
		t.Fatalf("plan: got %+v", p)
	}
	themes := p.ThemeList()
	if len(themes) != 1 || themes[0].Theme != "personal growth" {
		t.Fatalf("themes: got %+v", themes)
	}
	if !p.WeekStart.Equal(planner.WeekStart(time.Now())) {
		t.Fatalf("week start: got %v", p.WeekStart)
	}
	if gen.Urgency != "medium" || gen.Patterns.EntryCount != 0 || gen.Patterns.AverageMood != 5.0 {
		t.Fatalf("generated: got %+v", gen)
	}

	cur, err := f.plan.Current(ctx)
	if err != nil || cur.ID != p.ID {
		t.Fatalf("Current: %+v %v", cur, err)
	}
	list, err := f.plan.List(ctx, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("List: %d %v", len(list), err)
	}
}

func TestPlanAdjust(t *testing.T) {
	f := newFixture(t)
	ctx, user := f.as(t, "adjuster")
	otherCtx, _ := f.as(t, "intruder")

	gen, err := f.plan.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := gen.Plan.ID

	_, err = f.plan.Adjust(otherCtx, id)
	wantStatus(t, err, http.StatusNotFound)

	testutil.SeedConversation(t, context.Background(), f.db, user.ID, "s1", "Personal Growth", time.Now().UTC())
	if _, err := f.journal.Create(ctx, "a quiet evening"); err != nil {
		t.Fatalf("journal Create: %v", err)
	}

	adjusted, err := f.plan.Adjust(ctx, id)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	themes := adjusted.ThemeList()
	if len(themes) != 1 || themes[0].Theme != planner.RecentInsightsTheme || themes[0].Priority != 2 {
		t.Fatalf("adjusted themes: got %+v", themes)
	}

	again, err := f.plan.Adjust(ctx, id)
	if err != nil {
		t.Fatalf("second Adjust: %v", err)
	}
	if got := again.ThemeList(); len(got) != 1 || got[0].Theme != planner.RecentInsightsTheme {
		t.Fatalf("second adjust must not duplicate themes: got %+v", got)
	}

	stored, err := f.plans.GetByID(dbctx.Context{Ctx: ctx}, user.ID, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got := stored.ThemeList(); len(got) != 1 || got[0].Theme != planner.RecentInsightsTheme {
		t.Fatalf("stored themes: got %+v", got)
	}
}

func TestPlanStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.as(t, "status")

	gen, err := f.plan.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := gen.Plan.ID

	_, err = f.plan.UpdateStatus(ctx, id, "paused")
	wantStatus(t, err, http.StatusBadRequest)
	_, err = f.plan.UpdateStatus(ctx, uuid.New(), "completed")
	wantStatus(t, err, http.StatusNotFound)

	same, err := f.plan.UpdateStatus(ctx, id, "active")
	if err != nil || same.Status != types.PlanActive {
		t.Fatalf("no-op update: %+v %v", same, err)
	}

	done, err := f.plan.UpdateStatus(ctx, id, " Completed ")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if done.Status != types.PlanCompleted {
		t.Fatalf("status: got %q", done.Status)
	}

	_, err = f.plan.UpdateStatus(ctx, id, "cancelled")
	wantStatus(t, err, http.StatusConflict)
	_, err = f.plan.UpdateStatus(ctx, id, "active")
	wantStatus(t, err, http.StatusConflict)
	_, err = f.plan.Adjust(ctx, id)
	wantStatus(t, err, http.StatusConflict)
	_, err = f.plan.Current(ctx)
	wantStatus(t, err, http.StatusNotFound)
}
