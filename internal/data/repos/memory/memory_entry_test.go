package memory

import (
	"context"
	"testing"

	"github.com/navneetha-rajan/mindmate/internal/data/repos/testutil"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
)

func TestMemoryEntryRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewMemoryEntryRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, db, "rememberer")
	_, err := repo.Create(dbc, []*types.MemoryEntry{
		{UserID: u.ID, MemoryType: types.MemoryEmotional, Content: "felt calmer after walking"},
		{UserID: u.ID, MemoryType: types.MemoryCognitive, Content: "session summary"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := repo.List(dbc, u.ID, "", 0)
	if err != nil || len(all) != 2 {
		t.Fatalf("List(all): %v len=%d", err, len(all))
	}
	cognitive, err := repo.List(dbc, u.ID, types.MemoryCognitive, 0)
	if err != nil || len(cognitive) != 1 || cognitive[0].Content != "session summary" {
		t.Fatalf("List(cognitive): %v %+v", err, cognitive)
	}
}
