package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coachdesk/coachdesk/pkg/model"
)

var (
	// ErrNoSuchUser is returned by Login when the email does not match any
	// account.
	ErrNoSuchUser = errors.New("no such user")
	// ErrMalformedToken is returned by VerifyToken when the token does not
	// have the expected structure.
	ErrMalformedToken = errors.New("malformed token")
	// ErrUnknownToken is returned by VerifyToken when a well-formed token
	// has no session.
	ErrUnknownToken = errors.New("unknown token")
	// ErrUnknownUser is returned by VerifyToken when a session references a
	// user that no longer resolves.
	ErrUnknownUser = errors.New("unknown user")
)

// UserDirectory is the subset of the entity store the authenticator needs.
type UserDirectory interface {
	GetUser(id string) (model.User, error)
	GetUserByEmail(email string) (model.User, error)
}

// Authenticator resolves credentials to identities and back.
type Authenticator struct {
	users     UserDirectory
	sessions  SessionStore
	generator *TokenGenerator
	now       func() time.Time
}

// NewAuthenticator creates an authenticator over the given user directory
// and session store.
func NewAuthenticator(users UserDirectory, sessions SessionStore) *Authenticator {
	return &Authenticator{
		users:     users,
		sessions:  sessions,
		generator: NewTokenGenerator(),
		now:       time.Now,
	}
}

// Login locates a user by exact email match and issues a fresh token.
// This is the prototype credential model: the password is accepted without
// validation. The returned user is sanitized.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, model.User, error) {
	_ = password // any password is accepted in the prototype flow

	user, err := a.users.GetUserByEmail(email)
	if err != nil {
		return "", model.User{}, ErrNoSuchUser
	}

	token, tokenHash, err := a.generator.GenerateToken()
	if err != nil {
		return "", model.User{}, fmt.Errorf("failed to issue token: %w", err)
	}

	session := Session{UserID: user.ID, IssuedAt: a.now()}
	if err := a.sessions.Put(ctx, tokenHash, session); err != nil {
		return "", model.User{}, fmt.Errorf("failed to persist session: %w", err)
	}

	return token, user.Sanitized(), nil
}

// VerifyToken resolves a token to its sanitized user. Tokens never expire.
func (a *Authenticator) VerifyToken(ctx context.Context, token string) (model.User, error) {
	if err := a.generator.ValidateTokenFormat(token); err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	session, err := a.sessions.Get(ctx, a.generator.HashToken(token))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return model.User{}, ErrUnknownToken
		}
		return model.User{}, fmt.Errorf("failed to load session: %w", err)
	}

	user, err := a.users.GetUser(session.UserID)
	if err != nil {
		return model.User{}, ErrUnknownUser
	}

	return user.Sanitized(), nil
}
