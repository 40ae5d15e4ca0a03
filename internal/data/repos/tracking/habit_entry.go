package tracking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/navneetha-rajan/mindmate/internal/data/repos/query"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

type HabitEntryRepo interface {
	Create(dbc dbctx.Context, entry *types.HabitEntry) (*types.HabitEntry, error)
	List(dbc dbctx.Context, userID uuid.UUID, f query.Filter) ([]*types.HabitEntry, error)
	ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.HabitEntry, error)
	Count(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type habitEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitEntryRepo(db *gorm.DB, baseLog *logger.Logger) HabitEntryRepo {
	repoLog := baseLog.With("repo", "HabitEntryRepo")
	return &habitEntryRepo{db: db, log: repoLog}
}

func (r *habitEntryRepo) Create(dbc dbctx.Context, entry *types.HabitEntry) (*types.HabitEntry, error) {
	if err := dbc.Conn(r.db).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *habitEntryRepo) List(dbc dbctx.Context, userID uuid.UUID, f query.Filter) ([]*types.HabitEntry, error) {
	var results []*types.HabitEntry
	q := dbc.Conn(r.db).Where("user_id = ?", userID)
	q = f.Window(q)
	q = f.Page(q, 30)
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitEntryRepo) ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.HabitEntry, error) {
	var results []*types.HabitEntry
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitEntryRepo) Count(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := dbc.Conn(r.db).
		Model(&types.HabitEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
