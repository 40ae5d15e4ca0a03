package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/navneetha-rajan/mindmate/internal/data/repos"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/domain/codec"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
)

const defaultMemoryLimit = 50

// Embedder turns memory text into vectors. openai.Client satisfies it.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type MemoryService interface {
	// Remember stores one entry per non-blank content string. Embedding
	// failures are logged and the entries are stored without vectors.
	Remember(ctx context.Context, userID uuid.UUID, memoryType, sourceID string, contents []string) error
	List(ctx context.Context, memoryType string, limit int) ([]*types.MemoryEntry, error)
}

type memoryService struct {
	log      *logger.Logger
	repo     repos.MemoryEntryRepo
	embedder Embedder
}

// NewMemoryService wires the memory store. embedder may be nil.
func NewMemoryService(log *logger.Logger, repo repos.MemoryEntryRepo, embedder Embedder) MemoryService {
	return &memoryService{
		log:      log.With("service", "MemoryService"),
		repo:     repo,
		embedder: embedder,
	}
}

func (ms *memoryService) Remember(ctx context.Context, userID uuid.UUID, memoryType, sourceID string, contents []string) error {
	if !types.ValidMemoryType(memoryType) {
		return apierr.BadRequest("invalid_memory_type", "unknown memory type %q", memoryType)
	}
	var texts []string
	for _, c := range contents {
		if t := strings.TrimSpace(c); t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	var vectors [][]float32
	if ms.embedder != nil {
		v, err := ms.embedder.Embed(ctx, texts)
		switch {
		case err != nil:
			ms.log.Warn("Embedding memories failed", "error", err, "count", len(texts))
		case len(v) != len(texts):
			ms.log.Warn("Embedding count mismatch", "want", len(texts), "got", len(v))
		default:
			vectors = v
		}
	}

	entries := make([]*types.MemoryEntry, 0, len(texts))
	for i, t := range texts {
		e := &types.MemoryEntry{
			UserID:     userID,
			MemoryType: memoryType,
			Content:    t,
			SourceID:   sourceID,
		}
		if vectors != nil {
			e.Embedding = codec.Encode(vectors[i])
		}
		entries = append(entries, e)
	}
	if _, err := ms.repo.Create(dbctx.Context{Ctx: ctx}, entries); err != nil {
		return fmt.Errorf("store memories: %w", err)
	}
	return nil
}

func (ms *memoryService) List(ctx context.Context, memoryType string, limit int) ([]*types.MemoryEntry, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	memoryType = strings.ToLower(strings.TrimSpace(memoryType))
	if memoryType != "" && !types.ValidMemoryType(memoryType) {
		return nil, apierr.BadRequest("invalid_memory_type", "type must be emotional, cognitive or behavioral")
	}
	if limit <= 0 {
		limit = defaultMemoryLimit
	}
	out, err := ms.repo.List(dbctx.Context{Ctx: ctx}, userID, memoryType, limit)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}
