package chat

import (
	"context"
	"testing"
	"time"

	"github.com/navneetha-rajan/mindmate/internal/data/repos/testutil"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
)

func TestConversationRepoSessions(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewConversationRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, db, "talker")
	base := time.Now().UTC().Add(-time.Hour)
	testutil.SeedConversation(t, ctx, db, u.ID, "s1", "work", base)
	testutil.SeedConversation(t, ctx, db, u.ID, "s1", "work", base.Add(time.Minute))
	testutil.SeedConversation(t, ctx, db, u.ID, "s2", "", base.Add(2*time.Minute))

	sessions, err := repo.ListSessions(dbc, u.ID, 0)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("ListSessions: expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != "s2" || sessions[1].Turns != 2 {
		t.Fatalf("ListSessions: unexpected summaries %+v %+v", sessions[0], sessions[1])
	}

	hist, err := repo.ListHistory(dbc, u.ID, "s1", 0)
	if err != nil || len(hist) != 2 {
		t.Fatalf("ListHistory(s1): %v len=%d", err, len(hist))
	}
	all, err := repo.ListHistory(dbc, u.ID, "", 2)
	if err != nil || len(all) != 2 {
		t.Fatalf("ListHistory(limit): %v len=%d", err, len(all))
	}

	since, err := repo.ListSince(dbc, u.ID, base.Add(30*time.Second))
	if err != nil || len(since) != 2 {
		t.Fatalf("ListSince: %v len=%d", err, len(since))
	}
	if n, err := repo.Count(dbc, u.ID); err != nil || n != 3 {
		t.Fatalf("Count: expected 3, got %d (%v)", n, err)
	}
}
