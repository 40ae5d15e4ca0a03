package chat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

type ConversationRepo interface {
	Create(dbc dbctx.Context, conv *types.Conversation) (*types.Conversation, error)
	ListHistory(dbc dbctx.Context, userID uuid.UUID, sessionID string, limit int) ([]*types.Conversation, error)
	ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.Conversation, error)
	ListSessions(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.SessionSummary, error)
	Count(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type conversationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	repoLog := baseLog.With("repo", "ConversationRepo")
	return &conversationRepo{db: db, log: repoLog}
}

func (r *conversationRepo) Create(dbc dbctx.Context, conv *types.Conversation) (*types.Conversation, error) {
	if err := dbc.Conn(r.db).Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

// ListHistory returns newest first, optionally scoped to one session.
func (r *conversationRepo) ListHistory(dbc dbctx.Context, userID uuid.UUID, sessionID string, limit int) ([]*types.Conversation, error) {
	if limit <= 0 {
		limit = 20
	}
	q := dbc.Conn(r.db).Where("user_id = ?", userID)
	if sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}
	var results []*types.Conversation
	if err := q.Order("created_at DESC").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *conversationRepo) ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.Conversation, error) {
	var results []*types.Conversation
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListSessions folds turns into one summary per session, most recent first.
func (r *conversationRepo) ListSessions(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.SessionSummary, error) {
	var rows []*types.Conversation
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	index := map[string]*types.SessionSummary{}
	var out []*types.SessionSummary
	for _, row := range rows {
		if s, ok := index[row.SessionID]; ok {
			s.Turns++
			continue
		}
		s := &types.SessionSummary{
			SessionID:        row.SessionID,
			ConversationType: row.ConversationType,
			Theme:            row.Theme,
			LastMessage:      row.Message,
			Turns:            1,
			LastActivity:     row.CreatedAt,
		}
		index[row.SessionID] = s
		out = append(out, s)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *conversationRepo) Count(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := dbc.Conn(r.db).
		Model(&types.Conversation{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
