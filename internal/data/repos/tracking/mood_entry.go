package tracking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/navneetha-rajan/mindmate/internal/data/repos/query"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

type MoodEntryRepo interface {
	Create(dbc dbctx.Context, entry *types.MoodEntry) (*types.MoodEntry, error)
	List(dbc dbctx.Context, userID uuid.UUID, f query.Filter) ([]*types.MoodEntry, error)
	ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.MoodEntry, error)
	ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.MoodEntry, error)
	Count(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	AverageScore(dbc dbctx.Context, userID uuid.UUID) (float64, bool, error)
}

type moodEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodEntryRepo(db *gorm.DB, baseLog *logger.Logger) MoodEntryRepo {
	repoLog := baseLog.With("repo", "MoodEntryRepo")
	return &moodEntryRepo{db: db, log: repoLog}
}

func (r *moodEntryRepo) Create(dbc dbctx.Context, entry *types.MoodEntry) (*types.MoodEntry, error) {
	if err := dbc.Conn(r.db).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *moodEntryRepo) List(dbc dbctx.Context, userID uuid.UUID, f query.Filter) ([]*types.MoodEntry, error) {
	var results []*types.MoodEntry
	q := dbc.Conn(r.db).Where("user_id = ?", userID)
	q = f.Window(q)
	q = f.Page(q, 30)
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *moodEntryRepo) ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.MoodEntry, error) {
	var results []*types.MoodEntry
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListRecent returns the newest limit entries in chronological order.
func (r *moodEntryRepo) ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.MoodEntry, error) {
	var results []*types.MoodEntry
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

func (r *moodEntryRepo) Count(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := dbc.Conn(r.db).
		Model(&types.MoodEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// AverageScore reports false when the user has no mood entries.
func (r *moodEntryRepo) AverageScore(dbc dbctx.Context, userID uuid.UUID) (float64, bool, error) {
	var avg sql.NullFloat64
	err := dbc.Conn(r.db).
		Model(&types.MoodEntry{}).
		Select("AVG(mood_score)").
		Where("user_id = ?", userID).
		Row().
		Scan(&avg)
	if err != nil {
		return 0, false, err
	}
	return avg.Float64, avg.Valid, nil
}
