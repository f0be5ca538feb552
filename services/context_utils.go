package services

import "context"

// detachedContext keeps ctx values but ignores its cancellation, so work that
// must follow a committed write is not cut off by the caller going away.
func detachedContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
