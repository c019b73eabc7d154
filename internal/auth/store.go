package auth

import (
	"context"
	"time"
)

// SessionRecord is the server side state of one admin session. The record
// is valid while now - IssuedOrRefreshedAt <= the session TTL; every
// successful validation slides IssuedOrRefreshedAt forward.
type SessionRecord struct {
	IssuedOrRefreshedAt time.Time
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*RedisStore)(nil)

// Store maps a session token to its record. The default deployment uses
// the in-process MemoryStore; RedisStore exists so that sessions can be
// shared between instances without touching the service logic.
type Store interface {
	Get(ctx context.Context, token string) (SessionRecord, bool, error)
	Set(ctx context.Context, token string, record SessionRecord) error
	Delete(ctx context.Context, token string) error
	Tokens(ctx context.Context) ([]string, error)
}
