// Package service is the resource service layer: the only component that
// mutates the entity store. Every operation resolves the acting user from
// its token, consults the permission predicates, and only then touches the
// store. All failures are normalized into the Kind taxonomy before they
// reach a caller.
package service

import (
	"context"
	"errors"

	"github.com/coachdesk/coachdesk/pkg/analytics"
	"github.com/coachdesk/coachdesk/pkg/auth"
	"github.com/coachdesk/coachdesk/pkg/model"
	"github.com/coachdesk/coachdesk/pkg/rbac"
	"github.com/coachdesk/coachdesk/pkg/store"
)

// Service orchestrates the store and the permission engine per resource
// type.
type Service struct {
	store *store.Store
	auth  *auth.Authenticator
}

// New creates a service over the given store and authenticator.
func New(st *store.Store, authenticator *auth.Authenticator) *Service {
	return &Service{store: st, auth: authenticator}
}

// LoginResult pairs a fresh token with its sanitized user.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authenticates by email and issues a token. The prototype accepts
// any password value.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" {
		return LoginResult{}, validation("email is required")
	}

	token, user, err := s.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrNoSuchUser) {
			return LoginResult{}, unauthenticated("no account matches that email")
		}
		return LoginResult{}, internal(err)
	}
	return LoginResult{Token: token, User: user}, nil
}

// Me resolves a token to its sanitized user.
func (s *Service) Me(ctx context.Context, token string) (model.User, error) {
	return s.resolve(ctx, token)
}

// resolve maps token verification failures onto the unauthenticated kind.
func (s *Service) resolve(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, unauthenticated("missing token")
	}
	user, err := s.auth.VerifyToken(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMalformedToken):
			return model.User{}, unauthenticated("malformed token")
		case errors.Is(err, auth.ErrUnknownToken), errors.Is(err, auth.ErrUnknownUser):
			return model.User{}, unauthenticated("invalid token")
		}
		return model.User{}, internal(err)
	}
	return user, nil
}

// ListUsers returns sanitized users matching the filter. Requires user
// management rights.
func (s *Service) ListUsers(ctx context.Context, token string, f store.UserFilter) ([]model.User, error) {
	actor, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if !rbac.CanManageUsers(actor) {
		return nil, forbidden("insufficient permissions to manage users")
	}

	users := s.store.ListUsers(f)
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

// GetUser returns a single sanitized user. Any authenticated caller may
// look up a profile.
func (s *Service) GetUser(ctx context.Context, token, id string) (model.User, error) {
	if _, err := s.resolve(ctx, token); err != nil {
		return model.User{}, err
	}

	user, err := s.store.GetUser(id)
	if err != nil {
		return model.User{}, notFound("user not found")
	}
	return user.Sanitized(), nil
}

// UpdateUser merges a patch into an existing user. Requires user management
// rights.
func (s *Service) UpdateUser(ctx context.Context, token, id string, patch store.UserPatch) (model.User, error) {
	actor, err := s.resolve(ctx, token)
	if err != nil {
		return model.User{}, err
	}
	if !rbac.CanManageUsers(actor) {
		return model.User{}, forbidden("insufficient permissions to manage users")
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return model.User{}, validation("invalid role")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return model.User{}, validation("invalid status")
	}

	user, err := s.store.UpdateUser(id, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return model.User{}, notFound("user not found")
		case errors.Is(err, store.ErrDuplicateEmail):
			return model.User{}, validation("email already in use")
		}
		return model.User{}, internal(err)
	}
	return user.Sanitized(), nil
}

// ListModules returns modules matching the filter. Any authenticated caller
// may list; per-module access applies on reads of a single module.
func (s *Service) ListModules(ctx context.Context, token string, f store.ModuleFilter) ([]model.Module, error) {
	if _, err := s.resolve(ctx, token); err != nil {
		return nil, err
	}
	return s.store.ListModules(f), nil
}

// GetModule returns a single module, applying the module's access level
// against the caller's role.
func (s *Service) GetModule(ctx context.Context, token, id string) (model.Module, error) {
	actor, err := s.resolve(ctx, token)
	if err != nil {
		return model.Module{}, err
	}

	module, err := s.store.GetModule(id)
	if err != nil {
		return model.Module{}, notFound("module not found")
	}
	if !rbac.CanAccessModule(actor, module) {
		return model.Module{}, forbidden("you do not have permission to access this module")
	}
	return module, nil
}

// CreateModule creates a module authored by the acting user. Version starts
// at 1; status defaults to draft.
func (s *Service) CreateModule(ctx context.Context, token string, payload model.Module) (model.Module, error) {
	actor, err := s.resolve(ctx, token)
	if err != nil {
		return model.Module{}, err
	}
	if !rbac.CanUploadModule(actor) {
		return model.Module{}, forbidden("insufficient permissions to create modules")
	}
	if payload.Title == "" {
		return model.Module{}, validation("title is required")
	}
	if !payload.AccessLevel.Valid() {
		return model.Module{}, validation("invalid access level")
	}
	if payload.Status == "" {
		payload.Status = model.ModuleDraft
	}
	if !payload.Status.Valid() {
		return model.Module{}, validation("invalid status")
	}

	payload.AuthorID = actor.ID
	payload.Version = 1
	return s.store.CreateModule(&payload), nil
}

// UpdateModule merges a patch into an existing module.
func (s *Service) UpdateModule(ctx context.Context, token, id string, patch store.ModulePatch) (model.Module, error) {
	actor, err := s.resolve(ctx, token)
	if err != nil {
		return model.Module{}, err
	}
	if !rbac.CanUploadModule(actor) {
		return model.Module{}, forbidden("insufficient permissions to edit modules")
	}
	if patch.AccessLevel != nil && !patch.AccessLevel.Valid() {
		return model.Module{}, validation("invalid access level")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return model.Module{}, validation("invalid status")
	}

	module, err := s.store.UpdateModule(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Module{}, notFound("module not found")
		}
		return model.Module{}, internal(err)
	}
	return module, nil
}

// PublishModule is the dedicated publish operation: it sets status to
// published and touches nothing else. The transition is allowed from any
// prior status, archived included.
func (s *Service) PublishModule(ctx context.Context, token, id string) (model.Module, error) {
	actor, err := s.resolve(ctx, token)
	if err != nil {
		return model.Module{}, err
	}
	if !rbac.CanPublishModule(actor) {
		return model.Module{}, forbidden("only admins can publish modules")
	}

	published := model.ModulePublished
	module, err := s.store.UpdateModule(id, store.ModulePatch{Status: &published})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Module{}, notFound("module not found")
		}
		return model.Module{}, internal(err)
	}
	return module, nil
}

// ListPrograms returns programs matching the filter.
func (s *Service) ListPrograms(ctx context.Context, token string, f store.ProgramFilter) ([]model.Program, error) {
	if _, err := s.resolve(ctx, token); err != nil {
		return nil, err
	}
	return s.store.ListPrograms(f), nil
}

// GetProgram returns a single program.
func (s *Service) GetProgram(ctx context.Context, token, id string) (model.Program, error) {
	if _, err := s.resolve(ctx, token); err != nil {
		return model.Program{}, err
	}

	program, err := s.store.GetProgram(id)
	if err != nil {
		return model.Program{}, notFound("program not found")
	}
	return program, nil
}

// CreateProgram creates a program. Requires program management rights.
func (s *Service) CreateProgram(ctx context.Context, token string, payload model.Program) (model.Program, error) {
	actor, err := s.resolve(ctx, token)
	if err != nil {
		return model.Program{}, err
	}
	if !rbac.CanManagePrograms(actor) {
		return model.Program{}, forbidden("only admins can create programs")
	}
	if payload.Title == "" {
		return model.Program{}, validation("title is required")
	}
	if !payload.Type.Valid() {
		return model.Program{}, validation("invalid program type")
	}

	return s.store.CreateProgram(&payload), nil
}

// UpdateProgram merges a patch into an existing program. Requires program
// management rights.
func (s *Service) UpdateProgram(ctx context.Context, token, id string, patch store.ProgramPatch) (model.Program, error) {
	actor, err := s.resolve(ctx, token)
	if err != nil {
		return model.Program{}, err
	}
	if !rbac.CanManagePrograms(actor) {
		return model.Program{}, forbidden("only admins can update programs")
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return model.Program{}, validation("invalid program type")
	}

	program, err := s.store.UpdateProgram(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Program{}, notFound("program not found")
		}
		return model.Program{}, internal(err)
	}
	return program, nil
}

// ListSessions returns sessions matching the filter, sorted by start time.
func (s *Service) ListSessions(ctx context.Context, token string, f store.SessionFilter) ([]model.Session, error) {
	if _, err := s.resolve(ctx, token); err != nil {
		return nil, err
	}
	return s.store.ListSessions(f), nil
}

// GetSession returns a single session.
func (s *Service) GetSession(ctx context.Context, token, id string) (model.Session, error) {
	if _, err := s.resolve(ctx, token); err != nil {
		return model.Session{}, err
	}

	session, err := s.store.GetSession(id)
	if err != nil {
		return model.Session{}, notFound("session not found")
	}
	return session, nil
}

// CreateSession schedules a session. Attendee count is deliberately not
// checked against capacity.
func (s *Service) CreateSession(ctx context.Context, token string, payload model.Session) (model.Session, error) {
	actor, err := s.resolve(ctx, token)
	if err != nil {
		return model.Session{}, err
	}
	if !rbac.CanScheduleSessions(actor) {
		return model.Session{}, forbidden("insufficient permissions to create sessions")
	}
	if payload.Title == "" {
		return model.Session{}, validation("title is required")
	}
	if payload.ProgramID == "" {
		return model.Session{}, validation("program_id is required")
	}

	return s.store.CreateSession(&payload), nil
}

// UpdateSession merges a patch into an existing session.
func (s *Service) UpdateSession(ctx context.Context, token, id string, patch store.SessionPatch) (model.Session, error) {
	actor, err := s.resolve(ctx, token)
	if err != nil {
		return model.Session{}, err
	}
	if !rbac.CanScheduleSessions(actor) {
		return model.Session{}, forbidden("insufficient permissions to edit sessions")
	}

	session, err := s.store.UpdateSession(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Session{}, notFound("session not found")
		}
		return model.Session{}, internal(err)
	}
	return session, nil
}

// DashboardStats returns the admin overview aggregates. Requires analytics
// rights.
func (s *Service) DashboardStats(ctx context.Context, token string) (model.DashboardStats, error) {
	actor, err := s.resolve(ctx, token)
	if err != nil {
		return model.DashboardStats{}, err
	}
	if !rbac.CanViewAnalytics(actor) {
		return model.DashboardStats{}, forbidden("only admins can view analytics")
	}

	return analytics.Overview(s.store), nil
}
