package memory

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

type MemoryEntryRepo interface {
	Create(dbc dbctx.Context, entries []*types.MemoryEntry) ([]*types.MemoryEntry, error)
	List(dbc dbctx.Context, userID uuid.UUID, memoryType string, limit int) ([]*types.MemoryEntry, error)
}

type memoryEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemoryEntryRepo(db *gorm.DB, baseLog *logger.Logger) MemoryEntryRepo {
	repoLog := baseLog.With("repo", "MemoryEntryRepo")
	return &memoryEntryRepo{db: db, log: repoLog}
}

func (r *memoryEntryRepo) Create(dbc dbctx.Context, entries []*types.MemoryEntry) ([]*types.MemoryEntry, error) {
	if len(entries) == 0 {
		return []*types.MemoryEntry{}, nil
	}
	if err := dbc.Conn(r.db).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *memoryEntryRepo) List(dbc dbctx.Context, userID uuid.UUID, memoryType string, limit int) ([]*types.MemoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	q := dbc.Conn(r.db).Where("user_id = ?", userID)
	if memoryType != "" {
		q = q.Where("memory_type = ?", memoryType)
	}
	var results []*types.MemoryEntry
	if err := q.Order("created_at DESC").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
