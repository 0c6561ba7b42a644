package auth

import "context"

var _ SessionChecker = (*Service)(nil)
var _ SessionChecker = (*TestSessionChecker)(nil)

type SessionChecker interface {
	GetSession(ctx context.Context, token string) (*Session, error)
}
