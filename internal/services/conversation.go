package services

import (
	"context"
	"errors"
	"strings"

	"github.com/navneetha-rajan/mindmate/internal/data/repos"
	"github.com/navneetha-rajan/mindmate/internal/data/repos/query"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/conversation"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	apperrors "github.com/navneetha-rajan/mindmate/internal/pkg/errors"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
)

const (
	defaultHistoryLimit  = 20
	defaultSessionsLimit = 20
	suggestionEntries    = 5
)

type MessageInput struct {
	SessionID        string
	Message          string
	ConversationType string
	Theme            string
}

type Suggestions struct {
	Suggestions    []string `json:"suggestions"`
	BasedOnEntries int      `json:"based_on_entries"`
}

type ConversationService interface {
	Start(ctx context.Context, conversationType, theme string) (conversation.StartResult, error)
	Message(ctx context.Context, in MessageInput) (conversation.MessageResult, error)
	End(ctx context.Context, sessionID string) (conversation.EndResult, error)
	History(ctx context.Context, sessionID string, limit int) ([]*types.Conversation, error)
	Suggestions(ctx context.Context) (Suggestions, error)
	Sessions(ctx context.Context, limit int) ([]*types.SessionSummary, error)
	Types() []conversation.TypeInfo
	Themes() []string
}

type conversationService struct {
	log           *logger.Logger
	conversations repos.ConversationRepo
	entries       repos.JournalEntryRepo
	memories      MemoryService
	agent         *conversation.Agent
}

func NewConversationService(
	log *logger.Logger,
	conversations repos.ConversationRepo,
	entries repos.JournalEntryRepo,
	memories MemoryService,
	agent *conversation.Agent,
) ConversationService {
	return &conversationService{
		log:           log.With("service", "ConversationService"),
		conversations: conversations,
		entries:       entries,
		memories:      memories,
		agent:         agent,
	}
}

func agentErr(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return apierr.BadRequest("invalid_conversation_type", "conversation_type must be general, socratic or cbt")
	case errors.Is(err, apperrors.ErrNotFound):
		return apierr.NotFound("conversation session")
	default:
		return apierr.Internal(err)
	}
}

func (cs *conversationService) Start(ctx context.Context, conversationType, theme string) (conversation.StartResult, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return conversation.StartResult{}, err
	}
	res, err := cs.agent.Start(ctx, userID.String(), conversationType, theme)
	if err != nil {
		return conversation.StartResult{}, agentErr(err)
	}
	cs.log.Info("Conversation started", "user_id", userID, "session_id", res.SessionID, "type", res.ConversationType)
	return res, nil
}

func (cs *conversationService) Message(ctx context.Context, in MessageInput) (conversation.MessageResult, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return conversation.MessageResult{}, err
	}
	in.SessionID = strings.TrimSpace(in.SessionID)
	if in.SessionID == "" {
		return conversation.MessageResult{}, apierr.BadRequest("invalid_request", "session_id is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return conversation.MessageResult{}, apierr.BadRequest("invalid_request", "message must not be empty")
	}

	res, err := cs.agent.Message(ctx, userID.String(), in.SessionID, in.Message, in.ConversationType, in.Theme)
	if err != nil {
		return conversation.MessageResult{}, agentErr(err)
	}

	row := &types.Conversation{
		UserID:           userID,
		SessionID:        res.SessionID,
		Message:          in.Message,
		Response:         res.Response,
		ConversationType: res.ConversationType,
		Theme:            res.Theme,
		Fallback:         res.Fallback,
	}
	pctx, cancel := persistContext(ctx)
	defer cancel()
	if _, err := cs.conversations.Create(dbctx.Context{Ctx: pctx}, row); err != nil {
		cs.log.Error("Persist conversation turn failed", "error", err, "session_id", res.SessionID)
		return conversation.MessageResult{}, apierr.Internal(err)
	}
	return res, nil
}

func (cs *conversationService) End(ctx context.Context, sessionID string) (conversation.EndResult, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return conversation.EndResult{}, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return conversation.EndResult{}, apierr.BadRequest("invalid_request", "session_id is required")
	}
	res, err := cs.agent.End(ctx, userID.String(), sessionID)
	if err != nil {
		return conversation.EndResult{}, agentErr(err)
	}
	if res.Summary != "" {
		pctx, cancel := persistContext(ctx)
		defer cancel()
		if err := cs.memories.Remember(pctx, userID, types.MemoryCognitive, sessionID, []string{res.Summary}); err != nil {
			cs.log.Warn("Store session summary failed", "error", err, "session_id", sessionID)
		}
	}
	return res, nil
}

func (cs *conversationService) History(ctx context.Context, sessionID string, limit int) ([]*types.Conversation, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit, defaultHistoryLimit, query.MaxLimit)
	out, err := cs.conversations.ListHistory(dbctx.Context{Ctx: ctx}, userID, strings.TrimSpace(sessionID), limit)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

func (cs *conversationService) Suggestions(ctx context.Context) (Suggestions, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return Suggestions{}, err
	}
	recent, err := cs.entries.ListRecent(dbctx.Context{Ctx: ctx}, userID, suggestionEntries)
	if err != nil {
		return Suggestions{}, apierr.Internal(err)
	}
	history := make([]conversation.HistoryItem, 0, len(recent))
	for _, e := range recent {
		history = append(history, conversation.HistoryItem{
			Themes:      e.ThemeList(),
			MoodLabel:   e.MoodLabel,
			GrowthAreas: e.GrowthAreaList(),
		})
	}
	return Suggestions{
		Suggestions:    conversation.SuggestTopics(history),
		BasedOnEntries: len(recent),
	}, nil
}

func (cs *conversationService) Sessions(ctx context.Context, limit int) ([]*types.SessionSummary, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit, defaultSessionsLimit, query.MaxLimit)
	out, err := cs.conversations.ListSessions(dbctx.Context{Ctx: ctx}, userID, limit)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

func (cs *conversationService) Types() []conversation.TypeInfo { return conversation.Types() }

func (cs *conversationService) Themes() []string { return conversation.Themes() }
