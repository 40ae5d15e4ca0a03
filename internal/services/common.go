package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/navneetha-rajan/mindmate/internal/pkg/ctxutil"
	apperrors "github.com/navneetha-rajan/mindmate/internal/pkg/errors"
	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
)

var errNoUser = errors.New("request data not set in context")

// persistTimeout bounds writes that follow model work.
const persistTimeout = 5 * time.Second

// persistContext detaches ctx from its cancellation, keeping its values, so a
// result computed under a spent request deadline is still stored.
func persistContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
}

// Clock is injected so tests can pin time windows.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

func requireUser(ctx context.Context) (uuid.UUID, error) {
	id := ctxutil.UserID(ctx)
	if id == uuid.Nil {
		return uuid.Nil, apierr.Unauthorized(errNoUser)
	}
	return id, nil
}

// repoErr maps a repository error to its API form.
func repoErr(what string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apierr.NotFound(what)
	}
	return apierr.Internal(err)
}

// clampLimit applies a default to non-positive limits and caps the rest.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
