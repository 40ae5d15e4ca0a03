package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/navneetha-rajan/mindmate/internal/data/repos"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/query"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/planner"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
)

const (
	planJournalWindow = 10
	planMoodWindow    = 7
	defaultPlanLimit  = 10
)

type GeneratedPlan struct {
	Plan      *types.WeeklyPlan      `json:"plan"`
	Patterns  planner.PatternSummary `json:"patterns"`
	Reasoning string                 `json:"reasoning,omitempty"`
	Urgency   string                 `json:"urgency,omitempty"`
}

type PlanService interface {
	Create(ctx context.Context) (GeneratedPlan, error)
	List(ctx context.Context, limit int) ([]*types.WeeklyPlan, error)
	Current(ctx context.Context) (*types.WeeklyPlan, error)
	// Adjust applies activity since the plan's week start to an active plan.
	Adjust(ctx context.Context, planID uuid.UUID) (*types.WeeklyPlan, error)
	UpdateStatus(ctx context.Context, planID uuid.UUID, status string) (*types.WeeklyPlan, error)
}

type planService struct {
	log           *logger.Logger
	plans         repos.WeeklyPlanRepo
	entries       repos.JournalEntryRepo
	moods         repos.MoodEntryRepo
	conversations repos.ConversationRepo
	agent         *planner.Agent
}

func NewPlanService(
	log *logger.Logger,
	plans repos.WeeklyPlanRepo,
	entries repos.JournalEntryRepo,
	moods repos.MoodEntryRepo,
	conversations repos.ConversationRepo,
	agent *planner.Agent,
) PlanService {
	return &planService{
		log:           log.With("service", "PlanService"),
		plans:         plans,
		entries:       entries,
		moods:         moods,
		conversations: conversations,
		agent:         agent,
	}
}

func (ps *planService) Create(ctx context.Context) (GeneratedPlan, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return GeneratedPlan{}, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	entries, err := ps.entries.ListRecent(dbc, userID, planJournalWindow)
	if err != nil {
		return GeneratedPlan{}, apierr.Internal(err)
	}
	moods, err := ps.moods.ListRecent(dbc, userID, planMoodWindow)
	if err != nil {
		return GeneratedPlan{}, apierr.Internal(err)
	}

	plan := ps.agent.CreateWeeklyPlan(ctx, entries, moods)
	rec := plan.Record()
	rec.UserID = userID
	pctx, cancel := persistContext(ctx)
	defer cancel()
	created, err := ps.plans.Create(dbctx.Context{Ctx: pctx}, rec)
	if err != nil {
		ps.log.Error("Persist weekly plan failed", "error", err, "user_id", userID)
		return GeneratedPlan{}, apierr.Internal(err)
	}
	ps.log.Info("Weekly plan created", "user_id", userID, "plan_id", created.ID, "source", plan.Source, "themes", len(plan.Themes))
	return GeneratedPlan{
		Plan:      created,
		Patterns:  plan.Patterns,
		Reasoning: plan.Reasoning,
		Urgency:   plan.Urgency,
	}, nil
}

func (ps *planService) List(ctx context.Context, limit int) ([]*types.WeeklyPlan, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	out, err := ps.plans.List(dbctx.Context{Ctx: ctx}, userID, clampLimit(limit, defaultPlanLimit, query.MaxLimit))
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

func (ps *planService) Current(ctx context.Context) (*types.WeeklyPlan, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	p, err := ps.plans.GetCurrent(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, repoErr("active plan", err)
	}
	return p, nil
}

func (ps *planService) Adjust(ctx context.Context, planID uuid.UUID) (*types.WeeklyPlan, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	p, err := ps.plans.GetByID(dbc, userID, planID)
	if err != nil {
		return nil, repoErr("plan", err)
	}
	if p.Status != types.PlanActive {
		return nil, apierr.Conflict("plan is %s", p.Status)
	}

	convs, err := ps.conversations.ListSince(dbc, userID, p.WeekStart)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	entries, err := ps.entries.ListSince(dbc, userID, p.WeekStart)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	activities := make([]planner.Activity, 0, len(convs)+len(entries))
	for _, c := range convs {
		activities = append(activities, planner.Activity{Kind: planner.ActivityConversation, Theme: c.Theme})
	}
	for _, e := range entries {
		activities = append(activities, planner.Activity{Kind: planner.ActivityJournal, KeyInsights: e.InsightList()})
	}

	p.SetThemes(planner.AdjustPlan(p.ThemeList(), activities))
	if err := ps.plans.UpdateThemes(dbc, p); err != nil {
		return nil, repoErr("plan", err)
	}
	return p, nil
}

func (ps *planService) UpdateStatus(ctx context.Context, planID uuid.UUID, status string) (*types.WeeklyPlan, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if !types.ValidPlanStatus(status) {
		return nil, apierr.BadRequest("invalid_status", "status must be active, completed or cancelled")
	}
	dbc := dbctx.Context{Ctx: ctx}
	p, err := ps.plans.GetByID(dbc, userID, planID)
	if err != nil {
		return nil, repoErr("plan", err)
	}
	if p.Status == status {
		return p, nil
	}
	if p.Status != types.PlanActive || status == types.PlanActive {
		return nil, apierr.Conflict("cannot move plan from %s to %s", p.Status, status)
	}
	if err := ps.plans.UpdateStatus(dbc, userID, planID, status); err != nil {
		return nil, repoErr("plan", err)
	}
	updated, err := ps.plans.GetByID(dbc, userID, planID)
	if err != nil {
		return nil, repoErr("plan", fmt.Errorf("reload plan: %w", err))
	}
	return updated, nil
}
