package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/navneetha-rajan/mindmate/internal/modules/conversation/transcript"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

const defaultKeyPrefix = "mindmate:session:"

// TranscriptStore keeps each session as a JSON meta key plus a list of turns,
// both expiring after the configured TTL of inactivity.
type TranscriptStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
	locks  *transcript.KeyedMutex
}

type meta struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	ConversationType string    `json:"conversation_type"`
	Theme            string    `json:"theme"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewTranscriptStore(log *logger.Logger, addr string, ttl time.Duration) (*TranscriptStore, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewTranscriptStoreWithClient(log, rdb, ttl), nil
}

func NewTranscriptStoreWithClient(log *logger.Logger, rdb *goredis.Client, ttl time.Duration) *TranscriptStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TranscriptStore{
		log:    log.With("store", "RedisTranscriptStore"),
		rdb:    rdb,
		prefix: defaultKeyPrefix,
		ttl:    ttl,
		locks:  transcript.NewKeyedMutex(),
	}
}

func (s *TranscriptStore) metaKey(id string) string  { return s.prefix + id + ":meta" }
func (s *TranscriptStore) turnsKey(id string) string { return s.prefix + id + ":turns" }

func (s *TranscriptStore) Create(ctx context.Context, sess transcript.Session) error {
	raw, err := json.Marshal(meta{
		ID:               sess.ID,
		UserID:           sess.UserID,
		ConversationType: sess.ConversationType,
		Theme:            sess.Theme,
		CreatedAt:        sess.CreatedAt,
	})
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetNX(ctx, s.metaKey(sess.ID), raw, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis create session: %w", err)
	}
	if !ok {
		return transcript.ErrExists
	}
	if len(sess.Turns) > 0 {
		return s.Append(ctx, sess.ID, sess.Turns...)
	}
	return nil
}

func (s *TranscriptStore) Append(ctx context.Context, sessionID string, turns ...transcript.Turn) error {
	n, err := s.rdb.Exists(ctx, s.metaKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("redis append: %w", err)
	}
	if n == 0 {
		return transcript.ErrNotFound
	}
	if len(turns) == 0 {
		return nil
	}
	values := make([]any, 0, len(turns))
	for _, t := range turns {
		raw, err := json.Marshal(t)
		if err != nil {
			return err
		}
		values = append(values, raw)
	}
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, s.turnsKey(sessionID), values...)
	pipe.Expire(ctx, s.turnsKey(sessionID), s.ttl)
	pipe.Expire(ctx, s.metaKey(sessionID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis append: %w", err)
	}
	return nil
}

func (s *TranscriptStore) Read(ctx context.Context, sessionID string) (transcript.Session, error) {
	raw, err := s.rdb.Get(ctx, s.metaKey(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return transcript.Session{}, transcript.ErrNotFound
	}
	if err != nil {
		return transcript.Session{}, fmt.Errorf("redis read session: %w", err)
	}
	var m meta
	if err := json.Unmarshal(raw, &m); err != nil {
		return transcript.Session{}, fmt.Errorf("decode session meta: %w", err)
	}
	items, err := s.rdb.LRange(ctx, s.turnsKey(sessionID), 0, -1).Result()
	if err != nil {
		return transcript.Session{}, fmt.Errorf("redis read turns: %w", err)
	}
	turns := make([]transcript.Turn, 0, len(items))
	for _, item := range items {
		var t transcript.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			s.log.Warn("skipping undecodable turn", "session_id", sessionID, "error", err)
			continue
		}
		turns = append(turns, t)
	}
	return transcript.Session{
		ID:               m.ID,
		UserID:           m.UserID,
		ConversationType: m.ConversationType,
		Theme:            m.Theme,
		CreatedAt:        m.CreatedAt,
		Turns:            turns,
	}, nil
}

func (s *TranscriptStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Del(ctx, s.metaKey(sessionID), s.turnsKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis delete session: %w", err)
	}
	return n > 0, nil
}

// Count scans for live meta keys, so sessions past their TTL are not counted.
func (s *TranscriptStore) Count(ctx context.Context) (int, error) {
	n := 0
	iter := s.rdb.Scan(ctx, 0, s.metaKey("*"), 200).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis count sessions: %w", err)
	}
	return n, nil
}

// Lock serializes work on a session within this process.
func (s *TranscriptStore) Lock(sessionID string) func() {
	return s.locks.Lock(sessionID)
}

func (s *TranscriptStore) Close() error {
	return s.rdb.Close()
}
