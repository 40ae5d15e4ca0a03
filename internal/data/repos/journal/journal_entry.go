package journal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/navneetha-rajan/mindmate/internal/data/repos/query"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	apperrors "github.com/navneetha-rajan/mindmate/internal/pkg/errors"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

type JournalEntryRepo interface {
	Create(dbc dbctx.Context, entry *types.JournalEntry) (*types.JournalEntry, error)
	GetByID(dbc dbctx.Context, userID, entryID uuid.UUID) (*types.JournalEntry, error)
	List(dbc dbctx.Context, userID uuid.UUID, f query.Filter) ([]*types.JournalEntry, error)
	ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.JournalEntry, error)
	ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.JournalEntry, error)
	UpdateAnalysis(dbc dbctx.Context, entry *types.JournalEntry) error
	Delete(dbc dbctx.Context, userID, entryID uuid.UUID) error
	Count(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type journalEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJournalEntryRepo(db *gorm.DB, baseLog *logger.Logger) JournalEntryRepo {
	repoLog := baseLog.With("repo", "JournalEntryRepo")
	return &journalEntryRepo{db: db, log: repoLog}
}

func (r *journalEntryRepo) Create(dbc dbctx.Context, entry *types.JournalEntry) (*types.JournalEntry, error) {
	if err := dbc.Conn(r.db).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *journalEntryRepo) GetByID(dbc dbctx.Context, userID, entryID uuid.UUID) (*types.JournalEntry, error) {
	var e types.JournalEntry
	err := dbc.Conn(r.db).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns newest first.
func (r *journalEntryRepo) List(dbc dbctx.Context, userID uuid.UUID, f query.Filter) ([]*types.JournalEntry, error) {
	var results []*types.JournalEntry
	q := dbc.Conn(r.db).Where("user_id = ?", userID)
	q = f.Window(q)
	q = f.Page(q, 10)
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListSince returns entries created at or after since, oldest first.
func (r *journalEntryRepo) ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.JournalEntry, error) {
	var results []*types.JournalEntry
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListRecent returns the newest limit entries in chronological order.
func (r *journalEntryRepo) ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.JournalEntry, error) {
	var results []*types.JournalEntry
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

func (r *journalEntryRepo) UpdateAnalysis(dbc dbctx.Context, entry *types.JournalEntry) error {
	res := dbc.Conn(r.db).
		Model(&types.JournalEntry{}).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		Updates(map[string]any{
			"mood_score":         entry.MoodScore,
			"mood_label":         entry.MoodLabel,
			"themes":             entry.Themes,
			"emotional_triggers": entry.EmotionalTriggers,
			"stress_level":       entry.StressLevel,
			"key_insights":       entry.KeyInsights,
			"growth_areas":       entry.GrowthAreas,
			"suggested_focus":    entry.SuggestedFocus,
			"analysis_source":    entry.AnalysisSource,
			"updated_at":         time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *journalEntryRepo) Delete(dbc dbctx.Context, userID, entryID uuid.UUID) error {
	res := dbc.Conn(r.db).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&types.JournalEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *journalEntryRepo) Count(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := dbc.Conn(r.db).
		Model(&types.JournalEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
