package usecase

import "context"

type attemptIDKey struct{}

// WithAttemptID はサブミット試行IDをcontextに格納します。
func WithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptIDKey{}, id)
}

// AttemptIDFrom はcontextからサブミット試行IDを取り出します。
func AttemptIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(attemptIDKey{}).(string)
	return id, ok && id != ""
}
