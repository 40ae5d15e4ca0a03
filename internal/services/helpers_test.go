package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/navneetha-rajan/mindmate/internal/data/repos"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/testutil"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/analyzer"
	"github.com/navneetha-rajan/mindmate/internal/modules/conversation"
	"github.com/navneetha-rajan/mindmate/internal/modules/conversation/transcript"
	"github.com/navneetha-rajan/mindmate/internal/modules/insights"
	"github.com/navneetha-rajan/mindmate/internal/modules/journal"
	"github.com/navneetha-rajan/mindmate/internal/modules/planner"
	"github.com/navneetha-rajan/mindmate/internal/pkg/ctxutil"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
)

type fixture struct {
	db            *gorm.DB
	log           *logger.Logger
	users         repos.UserRepo
	tokens        repos.UserTokenRepo
	entries       repos.JournalEntryRepo
	conversations repos.ConversationRepo
	moods         repos.MoodEntryRepo
	habits        repos.HabitEntryRepo
	plans         repos.WeeklyPlanRepo
	memoryRepo    repos.MemoryEntryRepo

	memories MemoryService
	journal  JournalService
	convo    ConversationService
	insights InsightsService
	plan     PlanService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	f := &fixture{
		db:            db,
		log:           log,
		users:         repos.NewUserRepo(db, log),
		tokens:        repos.NewUserTokenRepo(db, log),
		entries:       repos.NewJournalEntryRepo(db, log),
		conversations: repos.NewConversationRepo(db, log),
		moods:         repos.NewMoodEntryRepo(db, log),
		habits:        repos.NewHabitEntryRepo(db, log),
		plans:         repos.NewWeeklyPlanRepo(db, log),
		memoryRepo:    repos.NewMemoryEntryRepo(db, log),
	}
	an := analyzer.NewHeuristic()
	f.memories = NewMemoryService(log, f.memoryRepo, nil)
	f.journal = NewJournalService(log, f.entries, f.memories, journal.NewAgent(an))
	f.convo = NewConversationService(log, f.conversations, f.entries, f.memories,
		conversation.NewAgent(an, transcript.NewMemoryStore(), conversation.WithLogger(log)))
	f.insights = NewInsightsService(log, f.moods, f.habits, f.entries, f.conversations,
		insights.NewAgent(an), Features{MoodTracking: true, HabitCorrelation: true})
	f.plan = NewPlanService(log, f.plans, f.entries, f.moods, f.conversations,
		planner.NewAgent(an, planner.WithLogger(log)))
	return f
}

// as seeds a user and returns a context authenticated as them.
func (f *fixture) as(t *testing.T, username string) (context.Context, *types.User) {
	t.Helper()
	u := testutil.SeedUser(t, context.Background(), f.db, username)
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: u.ID, Username: u.Username})
	return ctx, u
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	ae, ok := apierr.As(err)
	if !ok {
		t.Fatalf("expected api error with status %d, got %v", status, err)
	}
	if ae.Status != status {
		t.Fatalf("expected status %d, got %d (%v)", status, ae.Status, ae)
	}
}

func TestRequireUser(t *testing.T) {
	_, err := requireUser(context.Background())
	wantStatus(t, err, http.StatusUnauthorized)
	if !errors.Is(err, errNoUser) {
		t.Fatalf("expected errNoUser in chain, got %v", err)
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct{ in, want int }{{0, 20}, {-3, 20}, {5, 5}, {500, 100}}
	for _, tc := range cases {
		if got := clampLimit(tc.in, 20, 100); got != tc.want {
			t.Fatalf("clampLimit(%d): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}
