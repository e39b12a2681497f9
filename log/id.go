package log

import (
	"context"
	"math/rand"
)

type idKey struct{}

// ContextWithNewID attaches a random request ID to ctx so every line logged
// for one operation can be correlated.
func ContextWithNewID(ctx context.Context) context.Context {
	return context.WithValue(ctx, (*idKey)(nil), rand.Uint32())
}

func IDFromContext(ctx context.Context) (uint32, bool) {
	id, loaded := ctx.Value((*idKey)(nil)).(uint32)
	return id, loaded
}
