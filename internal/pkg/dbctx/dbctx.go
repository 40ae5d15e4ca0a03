package dbctx

import (
	"context"

	"gorm.io/gorm"

	"github.com/navneetha-rajan/mindmate/internal/pkg/ctxutil"
)

// Context bundles a request context with an optional GORM transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Conn returns the transaction when set, otherwise the fallback handle,
// bound to the request context.
func (c Context) Conn(fallback *gorm.DB) *gorm.DB {
	transaction := c.Tx
	if transaction == nil {
		transaction = fallback
	}
	return transaction.WithContext(ctxutil.Default(c.Ctx))
}
