package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const ctxStoreID contextKey = "store_id"

// StoreIDFromContext returns the admin store scope, or uuid.Nil when absent.
func StoreIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxStoreID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// WithStoreID injects the store identifier for downstream handlers.
func WithStoreID(ctx context.Context, storeID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxStoreID, storeID)
}
