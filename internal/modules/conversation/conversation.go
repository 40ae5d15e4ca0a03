// Package conversation runs reflective chat sessions over a transcript store.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/modules/analyzer"
	"github.com/navneetha-rajan/mindmate/internal/modules/conversation/transcript"
	"github.com/navneetha-rajan/mindmate/internal/modules/heuristics"
	"github.com/navneetha-rajan/mindmate/internal/observability"
	apperrors "github.com/navneetha-rajan/mindmate/internal/pkg/errors"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

var (
	ErrInvalidType     = fmt.Errorf("%w: unknown conversation type", apperrors.ErrInvalidArgument)
	ErrSessionNotFound = fmt.Errorf("session %w", apperrors.ErrNotFound)
)

type Agent struct {
	analyzer analyzer.Analyzer
	store    transcript.Store
	log      *logger.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

type Option func(*Agent)

func WithLogger(log *logger.Logger) Option {
	return func(a *Agent) {
		if log != nil {
			a.log = log.With("agent", "ConversationAgent")
		}
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(a *Agent) { a.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		if now != nil {
			a.now = now
		}
	}
}

func NewAgent(an analyzer.Analyzer, store transcript.Store, opts ...Option) *Agent {
	a := &Agent{
		analyzer: an,
		store:    store,
		log:      logger.Nop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(a)
	}
	a.metrics.TrackSessions(store.Count)
	return a
}

type StartResult struct {
	SessionID        string    `json:"session_id"`
	OpeningMessage   string    `json:"opening_message"`
	ConversationType string    `json:"conversation_type"`
	Theme            string    `json:"theme,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

type MessageResult struct {
	Response         string    `json:"response"`
	SessionID        string    `json:"session_id"`
	ConversationType string    `json:"conversation_type"`
	Theme            string    `json:"theme,omitempty"`
	Fallback         bool      `json:"fallback"`
	Timestamp        time.Time `json:"timestamp"`
}

type EndResult struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Summary   string `json:"summary,omitempty"`
}

// resolveType defaults an empty type and rejects unknown ones.
func resolveType(t, fallback string) (string, error) {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" {
		t = fallback
	}
	if t == "" {
		t = types.ConversationGeneral
	}
	if !types.ValidConversationType(t) {
		return "", ErrInvalidType
	}
	return t, nil
}

func (a *Agent) Start(ctx context.Context, userID, conversationType, theme string) (StartResult, error) {
	convType, err := resolveType(conversationType, "")
	if err != nil {
		return StartResult{}, err
	}
	theme = strings.TrimSpace(theme)
	now := a.now()
	sess := transcript.Session{
		ID:               uuid.NewString(),
		UserID:           userID,
		ConversationType: convType,
		Theme:            theme,
		CreatedAt:        now,
	}
	if err := a.store.Create(ctx, sess); err != nil {
		return StartResult{}, fmt.Errorf("create transcript: %w", err)
	}

	opening := a.analyzer.OpeningLine(ctx, convType, theme)
	if err := a.store.Append(ctx, sess.ID, transcript.Turn{Role: transcript.RoleAssistant, Content: opening, At: now}); err != nil {
		return StartResult{}, fmt.Errorf("append opening: %w", err)
	}
	a.log.Debug("conversation started", "session_id", sess.ID, "user_id", userID, "type", convType)

	return StartResult{
		SessionID:        sess.ID,
		OpeningMessage:   opening,
		ConversationType: convType,
		Theme:            theme,
		Timestamp:        now,
	}, nil
}

// loadOrCreate reads the transcript, creating it for the caller when missing.
// Must be called under the session lock.
func (a *Agent) loadOrCreate(ctx context.Context, userID, sessionID, convType, theme string) (transcript.Session, error) {
	sess, err := a.store.Read(ctx, sessionID)
	if err == nil {
		if sess.UserID != userID {
			return transcript.Session{}, ErrSessionNotFound
		}
		return sess, nil
	}
	if !errors.Is(err, transcript.ErrNotFound) {
		return transcript.Session{}, fmt.Errorf("read transcript: %w", err)
	}
	sess = transcript.Session{
		ID:               sessionID,
		UserID:           userID,
		ConversationType: convType,
		Theme:            theme,
		CreatedAt:        a.now(),
	}
	if err := a.store.Create(ctx, sess); err != nil {
		return transcript.Session{}, fmt.Errorf("create transcript: %w", err)
	}
	return sess, nil
}

// Message answers one user turn. The whole read, reply and append cycle holds
// the session lock so turns on one session never interleave.
func (a *Agent) Message(ctx context.Context, userID, sessionID, text, conversationType, theme string) (MessageResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return MessageResult{}, fmt.Errorf("%w: session_id required", apperrors.ErrInvalidArgument)
	}
	requested, err := resolveType(conversationType, types.ConversationGeneral)
	if err != nil {
		return MessageResult{}, err
	}
	theme = strings.TrimSpace(theme)

	unlock := a.store.Lock(sessionID)
	defer unlock()

	sess, err := a.loadOrCreate(ctx, userID, sessionID, requested, theme)
	if err != nil {
		return MessageResult{}, err
	}
	convType := requested
	if strings.TrimSpace(conversationType) == "" && sess.ConversationType != "" {
		convType = sess.ConversationType
	}
	if theme == "" {
		theme = sess.Theme
	}

	reply, fallback := a.analyzer.Reply(ctx, analyzer.ReplyInput{
		ConversationType: convType,
		Theme:            theme,
		History:          sess.Turns,
		Message:          text,
	})
	now := a.now()
	// The reply may have used up the caller's deadline; the turn is still kept.
	if err := a.store.Append(context.WithoutCancel(ctx), sessionID,
		transcript.Turn{Role: transcript.RoleUser, Content: text, At: now},
		transcript.Turn{Role: transcript.RoleAssistant, Content: reply, At: now},
	); err != nil {
		return MessageResult{}, fmt.Errorf("append turns: %w", err)
	}
	a.log.Debug("conversation turn", "session_id", sessionID, "message_len", len(text), "fallback", fallback)

	return MessageResult{
		Response:         reply,
		SessionID:        sessionID,
		ConversationType: convType,
		Theme:            theme,
		Fallback:         fallback,
		Timestamp:        now,
	}, nil
}

// End closes a session. The transcript is removed whether or not a summary is produced.
func (a *Agent) End(ctx context.Context, userID, sessionID string) (EndResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return EndResult{}, fmt.Errorf("%w: session_id required", apperrors.ErrInvalidArgument)
	}
	unlock := a.store.Lock(sessionID)
	defer unlock()

	sess, err := a.store.Read(ctx, sessionID)
	switch {
	case errors.Is(err, transcript.ErrNotFound):
		return EndResult{SessionID: sessionID, Message: heuristics.ClosingWithoutSummary}, nil
	case err != nil:
		return EndResult{}, fmt.Errorf("read transcript: %w", err)
	case sess.UserID != userID:
		return EndResult{}, ErrSessionNotFound
	}

	summary := a.summarize(ctx, sess)
	if _, err := a.store.Delete(context.WithoutCancel(ctx), sessionID); err != nil {
		return EndResult{}, fmt.Errorf("delete transcript: %w", err)
	}

	out := EndResult{SessionID: sessionID, Message: heuristics.ClosingWithoutSummary}
	if summary != "" {
		out.Message = heuristics.ClosingWithSummary
		out.Summary = summary
	}
	return out, nil
}

func (a *Agent) summarize(ctx context.Context, sess transcript.Session) (summary string) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("summary panicked; closing without summary", "session_id", sess.ID, "panic", r)
			summary = ""
		}
	}()
	hasUserTurn := false
	for _, t := range sess.Turns {
		if t.Role == transcript.RoleUser {
			hasUserTurn = true
			break
		}
	}
	if !hasUserTurn {
		return ""
	}
	return strings.TrimSpace(a.analyzer.SummarizeSession(ctx, sess.Turns))
}
