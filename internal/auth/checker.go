package auth

import "context"

var _ Checker = (*Service)(nil)
var _ Checker = (*TestChecker)(nil)

// Checker is the authorization gate decision surface: handlers that
// protect a route only ever ask "is this token a live session".
type Checker interface {
	IsValid(ctx context.Context, token string) (bool, error)
}

// TestChecker is a map backed Checker fake for handler tests
type TestChecker struct {
	ValidSessions map[string]bool
}

func NewTestChecker() *TestChecker {
	return &TestChecker{
		ValidSessions: map[string]bool{},
	}
}

func (c *TestChecker) IsValid(_ context.Context, token string) (bool, error) {
	return c.ValidSessions[token], nil
}
