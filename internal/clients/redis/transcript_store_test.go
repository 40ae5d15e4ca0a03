package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/navneetha-rajan/mindmate/internal/modules/conversation/transcript"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

func TestTranscriptStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	store, err := NewTranscriptStore(logger.Nop(), addr, time.Minute)
	if err != nil {
		t.Fatalf("NewTranscriptStore: %v", err)
	}
	defer store.Close()
	store.prefix = "mindmate:test:" + uuid.NewString() + ":"

	id := uuid.NewString()
	if err := store.Create(ctx, transcript.Session{ID: id, UserID: "u1", ConversationType: "socratic", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Create(ctx, transcript.Session{ID: id}); !errors.Is(err, transcript.ErrExists) {
		t.Fatalf("Create(dup): expected ErrExists, got %v", err)
	}
	if err := store.Append(ctx, id,
		transcript.Turn{Role: transcript.RoleUser, Content: "hi"},
		transcript.Turn{Role: transcript.RoleAssistant, Content: "hello"},
	); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := store.Read(ctx, id)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.UserID != "u1" || got.ConversationType != "socratic" || len(got.Turns) != 2 {
		t.Fatalf("Read: unexpected session %+v", got)
	}
	if n, err := store.Count(ctx); err != nil || n != 1 {
		t.Fatalf("Count: n=%d err=%v", n, err)
	}
	ttl, err := store.rdb.TTL(ctx, store.turnsKey(id)).Result()
	if err != nil || ttl <= 0 {
		t.Fatalf("turns TTL: expected positive, got %v (%v)", ttl, err)
	}

	if ok, err := store.Delete(ctx, id); err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if _, err := store.Read(ctx, id); !errors.Is(err, transcript.ErrNotFound) {
		t.Fatalf("Read after delete: expected ErrNotFound, got %v", err)
	}
	if n, err := store.Count(ctx); err != nil || n != 0 {
		t.Fatalf("Count after delete: n=%d err=%v", n, err)
	}
	if err := store.Append(ctx, id, transcript.Turn{Role: transcript.RoleUser}); !errors.Is(err, transcript.ErrNotFound) {
		t.Fatalf("Append after delete: expected ErrNotFound, got %v", err)
	}
}

func TestNewTranscriptStoreRequiresAddr(t *testing.T) {
	if _, err := NewTranscriptStore(logger.Nop(), " ", time.Minute); err == nil {
		t.Fatalf("expected error for empty addr")
	}
	s := NewTranscriptStoreWithClient(logger.Nop(), goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"}), 0)
	defer s.Close()
	if s.ttl != 24*time.Hour {
		t.Fatalf("default ttl: expected 24h, got %v", s.ttl)
	}
	if s.metaKey("x") != "mindmate:session:x:meta" {
		t.Fatalf("metaKey: got %q", s.metaKey("x"))
	}
}
