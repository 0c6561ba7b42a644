package auth

import "context"

// TestSessionChecker is an in-memory SessionChecker used in unit tests.
type TestSessionChecker struct {
	Sessions map[string]*Session
}

func NewTestSessionChecker() *TestSessionChecker {
	return &TestSessionChecker{
		Sessions: map[string]*Session{},
	}
}

func (c *TestSessionChecker) GetSession(_ context.Context, token string) (*Session, error) {
	session, ok := c.Sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
