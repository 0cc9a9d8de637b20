package domain

import "context"

type actorKey struct{}

// WithActor returns a copy of ctx carrying the authenticated user on whose
// behalf an operation runs.
func WithActor(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, actorKey{}, user)
}

// ActorFromContext returns the authenticated user stored by WithActor.
func ActorFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(actorKey{}).(*User)
	return user, ok && user != nil
}
