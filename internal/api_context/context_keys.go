package api_context

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	MediaIDKey    ctxKey = "mediaID"
	EntityTypeKey ctxKey = "entityType"
	EntityIDKey   ctxKey = "entityID"
	TaskIDKey     ctxKey = "taskID"
	AuthUserIDKey ctxKey = "authUserID"
	AuthRolesKey  ctxKey = "authRoles"
)

func MediaIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(MediaIDKey).(string)
	return id, ok
}

func EntityFromContext(ctx context.Context) (string, int64, bool) {
	typ, ok1 := ctx.Value(EntityTypeKey).(string)
	id, ok2 := ctx.Value(EntityIDKey).(int64)
	return typ, id, ok1 && ok2
}

func WithTaskID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TaskIDKey, id)
}

func TaskIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(TaskIDKey).(string)
	return id, ok
}

func AuthUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(uuid.UUID)
	return id, ok
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}
