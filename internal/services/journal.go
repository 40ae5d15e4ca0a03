package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/navneetha-rajan/mindmate/internal/data/repos"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/query"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/domain/codec"
	"github.com/navneetha-rajan/mindmate/internal/modules/analyzer"
	"github.com/navneetha-rajan/mindmate/internal/modules/journal"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
)

const (
	MaxJournalLength = 10000

	weekWindow  = 7 * 24 * time.Hour
	monthWindow = 30 * 24 * time.Hour
)

type JournalService interface {
	Create(ctx context.Context, content string) (*types.JournalEntry, error)
	List(ctx context.Context, f query.Filter) ([]*types.JournalEntry, error)
	Get(ctx context.Context, id uuid.UUID) (*types.JournalEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Reanalyze runs the analysis again and persists the result.
	Reanalyze(ctx context.Context, id uuid.UUID) (analyzer.EntryAnalysis, error)
	WeeklySummary(ctx context.Context) (journal.WeeklySummary, error)
	Themes(ctx context.Context) (journal.ThemeSummary, error)
	AnalyzeText(ctx context.Context, content string) (analyzer.EntryAnalysis, error)
}

type journalService struct {
	log      *logger.Logger
	entries  repos.JournalEntryRepo
	memories MemoryService
	agent    *journal.Agent
	now      Clock
}

func NewJournalService(log *logger.Logger, entries repos.JournalEntryRepo, memories MemoryService, agent *journal.Agent) JournalService {
	return &journalService{
		log:      log.With("service", "JournalService"),
		entries:  entries,
		memories: memories,
		agent:    agent,
		now:      systemClock,
	}
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apierr.BadRequest("invalid_content", "content must not be empty")
	}
	if utf8.RuneCountInString(content) > MaxJournalLength {
		return apierr.BadRequest("invalid_content", "content must be at most %d characters", MaxJournalLength)
	}
	return nil
}

func applyAnalysis(e *types.JournalEntry, a analyzer.EntryAnalysis) {
	e.MoodScore = a.MoodScore
	e.MoodLabel = a.MoodLabel
	e.Themes = codec.EncodeStrings(a.Themes)
	e.EmotionalTriggers = codec.EncodeStrings(a.EmotionalTriggers)
	e.StressLevel = a.StressLevel
	e.KeyInsights = codec.EncodeStrings(a.KeyInsights)
	e.GrowthAreas = codec.EncodeStrings(a.GrowthAreas)
	e.SuggestedFocus = a.SuggestedFocus
	e.AnalysisSource = a.Source
}

func (js *journalService) Create(ctx context.Context, content string) (*types.JournalEntry, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	analysis := js.agent.Analyze(ctx, content)
	entry := &types.JournalEntry{UserID: userID, Content: content}
	applyAnalysis(entry, analysis)

	pctx, cancel := persistContext(ctx)
	defer cancel()
	created, err := js.entries.Create(dbctx.Context{Ctx: pctx}, entry)
	if err != nil {
		js.log.Error("Create journal entry failed", "error", err, "user_id", userID)
		return nil, apierr.Internal(err)
	}
	js.log.Info("Journal entry created",
		"user_id", userID,
		"entry_id", created.ID,
		"length", utf8.RuneCountInString(content),
		"source", analysis.Source,
	)

	// Heuristic insights are placeholders, not something the user said.
	if analysis.Source != types.AnalysisSourceHeuristic {
		if err := js.memories.Remember(pctx, userID, types.MemoryEmotional, created.ID.String(), analysis.KeyInsights); err != nil {
			js.log.Warn("Store journal memories failed", "error", err, "entry_id", created.ID)
		}
	}
	return created, nil
}

func (js *journalService) List(ctx context.Context, f query.Filter) ([]*types.JournalEntry, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	out, err := js.entries.List(dbctx.Context{Ctx: ctx}, userID, f)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

func (js *journalService) Get(ctx context.Context, id uuid.UUID) (*types.JournalEntry, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	e, err := js.entries.GetByID(dbctx.Context{Ctx: ctx}, userID, id)
	if err != nil {
		return nil, repoErr("journal entry", err)
	}
	return e, nil
}

func (js *journalService) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if err := js.entries.Delete(dbctx.Context{Ctx: ctx}, userID, id); err != nil {
		return repoErr("journal entry", err)
	}
	return nil
}

func (js *journalService) Reanalyze(ctx context.Context, id uuid.UUID) (analyzer.EntryAnalysis, error) {
	e, err := js.Get(ctx, id)
	if err != nil {
		return analyzer.EntryAnalysis{}, err
	}
	analysis := js.agent.Analyze(ctx, e.Content)
	applyAnalysis(e, analysis)
	pctx, cancel := persistContext(ctx)
	defer cancel()
	if err := js.entries.UpdateAnalysis(dbctx.Context{Ctx: pctx}, e); err != nil {
		return analyzer.EntryAnalysis{}, repoErr("journal entry", err)
	}
	return analysis, nil
}

func (js *journalService) WeeklySummary(ctx context.Context) (journal.WeeklySummary, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return journal.WeeklySummary{}, err
	}
	entries, err := js.entries.ListSince(dbctx.Context{Ctx: ctx}, userID, js.now().Add(-weekWindow))
	if err != nil {
		return journal.WeeklySummary{}, apierr.Internal(err)
	}
	return js.agent.WeeklySummary(entries), nil
}

func (js *journalService) Themes(ctx context.Context) (journal.ThemeSummary, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return journal.ThemeSummary{}, err
	}
	entries, err := js.entries.ListSince(dbctx.Context{Ctx: ctx}, userID, time.Time{})
	if err != nil {
		return journal.ThemeSummary{}, apierr.Internal(err)
	}
	return js.agent.RecurringThemes(entries), nil
}

func (js *journalService) AnalyzeText(ctx context.Context, content string) (analyzer.EntryAnalysis, error) {
	if _, err := requireUser(ctx); err != nil {
		return analyzer.EntryAnalysis{}, err
	}
	if err := validateContent(content); err != nil {
		return analyzer.EntryAnalysis{}, err
	}
	return js.agent.Analyze(ctx, content), nil
}
