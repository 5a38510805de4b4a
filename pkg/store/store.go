// Package store implements the in-memory entity store backing the
// coachdesk service. All state lives for the lifetime of the process; there
// is no persistence and no delete operation. The store is an explicit
// object so tests and callers control its lifetime.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/coachdesk/coachdesk/pkg/model"
)

// ErrNotFound is returned when an entity id does not resolve.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an update would violate email
// uniqueness across users.
var ErrDuplicateEmail = errors.New("email already in use")

// Store holds the four entity collections. Keys are unique and insertion
// order is preserved. Safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	users    []*model.User
	modules  []*model.Module
	programs []*model.Program
	sessions []*model.Session

	userIndex    map[string]*model.User
	moduleIndex  map[string]*model.Module
	programIndex map[string]*model.Program
	sessionIndex map[string]*model.Session

	now func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		userIndex:    make(map[string]*model.User),
		moduleIndex:  make(map[string]*model.Module),
		programIndex: make(map[string]*model.Program),
		sessionIndex: make(map[string]*model.Session),
		now:          time.Now,
	}
}

// UserFilter selects users. Zero-valued fields match everything.
type UserFilter struct {
	Role   model.Role
	Status model.UserStatus
	Search string // case-insensitive substring on name or email
}

// ModuleFilter selects modules. Zero-valued fields match everything.
type ModuleFilter struct {
	Tag         model.ModuleTag
	Status      model.ModuleStatus
	AccessLevel model.AccessLevel
	Search      string // case-insensitive substring on title or description
}

// ProgramFilter selects programs.
type ProgramFilter struct {
	Type model.ProgramType
}

// SessionFilter selects sessions.
type SessionFilter struct {
	ProgramID string
	Upcoming  bool // only sessions starting after now
}

// ListUsers returns users matching every supplied predicate, in insertion
// order.
func (s *Store) ListUsers(f UserFilter) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if f.Search != "" && !containsFold(u.Name, f.Search) && !containsFold(u.Email, f.Search) {
			continue
		}
		out = append(out, cloneUser(*u))
	}
	return out
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.userIndex[id]
	if !ok {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return cloneUser(*u), nil
}

// GetUserByEmail returns the user with an exact email match.
func (s *Store) GetUserByEmail(email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(*u), nil
		}
	}
	return model.User{}, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

// CreateUser appends a user, assigning an id. Empty timestamps are filled
// with the current time.
func (s *Store) CreateUser(u *model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return model.User{}, fmt.Errorf("email %s: %w", u.Email, ErrDuplicateEmail)
		}
	}

	stored := cloneUser(*u)
	stored.ID = fmt.Sprintf("u%d", len(s.users)+1)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	if stored.LastActiveAt.IsZero() {
		stored.LastActiveAt = stored.CreatedAt
	}
	s.users = append(s.users, &stored)
	s.userIndex[stored.ID] = &stored
	return cloneUser(stored), nil
}

// UserPatch is a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Name         *string           `json:"name,omitempty"`
	Email        *string           `json:"email,omitempty"`
	Role         *model.Role       `json:"role,omitempty"`
	Profile      *model.Profile    `json:"profile,omitempty"`
	Tags         *[]string         `json:"tags,omitempty"`
	Status       *model.UserStatus `json:"status,omitempty"`
	LastActiveAt *time.Time        `json:"last_active_at,omitempty"`
}

// UpdateUser merges the patch into an existing user. Email uniqueness is
// enforced; unknown ids leave the collection unchanged.
func (s *Store) UpdateUser(id string, patch UserPatch) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.userIndex[id]
	if !ok {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}

	if patch.Email != nil {
		for _, existing := range s.users {
			if existing.ID != id && existing.Email == *patch.Email {
				return model.User{}, fmt.Errorf("email %s: %w", *patch.Email, ErrDuplicateEmail)
			}
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Profile != nil {
		u.Profile = *patch.Profile
		u.Profile.Certifications = copyStrings(u.Profile.Certifications)
	}
	if patch.Tags != nil {
		u.Tags = copyStrings(*patch.Tags)
	}
	if patch.Status != nil {
		u.Status = *patch.Status
	}
	if patch.LastActiveAt != nil {
		u.LastActiveAt = *patch.LastActiveAt
	}
	return cloneUser(*u), nil
}

// ListModules returns modules matching every supplied predicate, in
// insertion order.
func (s *Store) ListModules(f ModuleFilter) []model.Module {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Module, 0, len(s.modules))
	for _, m := range s.modules {
		if f.Tag != "" && !m.HasTag(f.Tag) {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.AccessLevel != "" && m.AccessLevel != f.AccessLevel {
			continue
		}
		if f.Search != "" && !containsFold(m.Title, f.Search) && !containsFold(m.Description, f.Search) {
			continue
		}
		out = append(out, cloneModule(*m))
	}
	return out
}

// GetModule returns the module with the given id.
func (s *Store) GetModule(id string) (model.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.moduleIndex[id]
	if !ok {
		return model.Module{}, fmt.Errorf("module %s: %w", id, ErrNotFound)
	}
	return cloneModule(*m), nil
}

// CreateModule appends a module, assigning an id and equal creation and
// update timestamps.
func (s *Store) CreateModule(m *model.Module) model.Module {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneModule(*m)
	stored.ID = fmt.Sprintf("m%d", len(s.modules)+1)
	stored.CreatedAt = s.now()
	stored.UpdatedAt = stored.CreatedAt
	s.modules = append(s.modules, &stored)
	s.moduleIndex[stored.ID] = &stored
	return cloneModule(stored)
}

// ModulePatch is a partial module update. Nil fields are left untouched.
type ModulePatch struct {
	Title       *string             `json:"title,omitempty"`
	Slug        *string             `json:"slug,omitempty"`
	Description *string             `json:"description,omitempty"`
	Files       *[]model.ModuleFile `json:"files,omitempty"`
	Tags        *[]model.ModuleTag  `json:"tags,omitempty"`
	AccessLevel *model.AccessLevel  `json:"access_level,omitempty"`
	Status      *model.ModuleStatus `json:"status,omitempty"`
	Version     *int                `json:"version,omitempty"`
}

// UpdateModule merges the patch into an existing module and refreshes its
// update timestamp.
func (s *Store) UpdateModule(id string, patch ModulePatch) (model.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.moduleIndex[id]
	if !ok {
		return model.Module{}, fmt.Errorf("module %s: %w", id, ErrNotFound)
	}

	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Slug != nil {
		m.Slug = *patch.Slug
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Files != nil {
		files := make([]model.ModuleFile, len(*patch.Files))
		copy(files, *patch.Files)
		m.Files = files
	}
	if patch.Tags != nil {
		tags := make([]model.ModuleTag, len(*patch.Tags))
		copy(tags, *patch.Tags)
		m.Tags = tags
	}
	if patch.AccessLevel != nil {
		m.AccessLevel = *patch.AccessLevel
	}
	if patch.Status != nil {
		m.Status = *patch.Status
	}
	if patch.Version != nil {
		m.Version = *patch.Version
	}
	m.UpdatedAt = s.now()
	return cloneModule(*m), nil
}

// ListPrograms returns programs matching the filter, in insertion order.
func (s *Store) ListPrograms(f ProgramFilter) []model.Program {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Program, 0, len(s.programs))
	for _, p := range s.programs {
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		out = append(out, cloneProgram(*p))
	}
	return out
}

// GetProgram returns the program with the given id.
func (s *Store) GetProgram(id string) (model.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.programIndex[id]
	if !ok {
		return model.Program{}, fmt.Errorf("program %s: %w", id, ErrNotFound)
	}
	return cloneProgram(*p), nil
}

// CreateProgram appends a program, assigning an id and creation timestamp.
func (s *Store) CreateProgram(p *model.Program) model.Program {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneProgram(*p)
	stored.ID = fmt.Sprintf("p%d", len(s.programs)+1)
	stored.CreatedAt = s.now()
	s.programs = append(s.programs, &stored)
	s.programIndex[stored.ID] = &stored
	return cloneProgram(stored)
}

// ProgramPatch is a partial program update. Nil fields are left untouched.
type ProgramPatch struct {
	Title              *string                   `json:"title,omitempty"`
	Type               *model.ProgramType        `json:"type,omitempty"`
	Description        *string                   `json:"description,omitempty"`
	Modules            *[]string                 `json:"modules,omitempty"`
	Facilitators       *[]string                 `json:"facilitators,omitempty"`
	EnrollmentSettings *model.EnrollmentSettings `json:"enrollment_settings,omitempty"`
}

// UpdateProgram merges the patch into an existing program.
func (s *Store) UpdateProgram(id string, patch ProgramPatch) (model.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.programIndex[id]
	if !ok {
		return model.Program{}, fmt.Errorf("program %s: %w", id, ErrNotFound)
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Modules != nil {
		p.Modules = copyStrings(*patch.Modules)
	}
	if patch.Facilitators != nil {
		p.Facilitators = copyStrings(*patch.Facilitators)
	}
	if patch.EnrollmentSettings != nil {
		p.EnrollmentSettings = *patch.EnrollmentSettings
	}
	return cloneProgram(*p), nil
}

// ListSessions returns sessions matching the filter, sorted ascending by
// start time.
func (s *Store) ListSessions(f SessionFilter) []model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]model.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if f.ProgramID != "" && sess.ProgramID != f.ProgramID {
			continue
		}
		if f.Upcoming && !sess.StartTime.After(now) {
			continue
		}
		out = append(out, cloneSession(*sess))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// GetSession returns the session with the given id.
func (s *Store) GetSession(id string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessionIndex[id]
	if !ok {
		return model.Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return cloneSession(*sess), nil
}

// CreateSession appends a session, assigning an id and creation timestamp.
// Attendee count is not checked against capacity.
func (s *Store) CreateSession(sess *model.Session) model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneSession(*sess)
	stored.ID = fmt.Sprintf("s%d", len(s.sessions)+1)
	stored.CreatedAt = s.now()
	s.sessions = append(s.sessions, &stored)
	s.sessionIndex[stored.ID] = &stored
	return cloneSession(stored)
}

// SessionPatch is a partial session update. Nil fields are left untouched.
type SessionPatch struct {
	ProgramID     *string    `json:"program_id,omitempty"`
	Title         *string    `json:"title,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	FacilitatorID *string    `json:"facilitator_id,omitempty"`
	Location      *string    `json:"location,omitempty"`
	Capacity      *int       `json:"capacity,omitempty"`
	Attendees     *[]string  `json:"attendees,omitempty"`
}

// UpdateSession merges the patch into an existing session.
func (s *Store) UpdateSession(id string, patch SessionPatch) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessionIndex[id]
	if !ok {
		return model.Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	if patch.ProgramID != nil {
		sess.ProgramID = *patch.ProgramID
	}
	if patch.Title != nil {
		sess.Title = *patch.Title
	}
	if patch.StartTime != nil {
		sess.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		sess.EndTime = *patch.EndTime
	}
	if patch.FacilitatorID != nil {
		sess.FacilitatorID = *patch.FacilitatorID
	}
	if patch.Location != nil {
		sess.Location = *patch.Location
	}
	if patch.Capacity != nil {
		sess.Capacity = *patch.Capacity
	}
	if patch.Attendees != nil {
		sess.Attendees = copyStrings(*patch.Attendees)
	}
	return cloneSession(*sess), nil
}

// Counts returns the collection sizes, used by metrics collection.
func (s *Store) Counts() (users, modules, programs, sessions int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), len(s.modules), len(s.programs), len(s.sessions)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Entities cross the store boundary as copies in both directions. The clone
// helpers duplicate slice fields so neither callers nor stored records can
// write through the other's backing arrays.

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func cloneUser(u model.User) model.User {
	u.Tags = copyStrings(u.Tags)
	u.Profile.Certifications = copyStrings(u.Profile.Certifications)
	return u
}

func cloneModule(m model.Module) model.Module {
	if m.Files != nil {
		files := make([]model.ModuleFile, len(m.Files))
		copy(files, m.Files)
		m.Files = files
	}
	if m.Tags != nil {
		tags := make([]model.ModuleTag, len(m.Tags))
		copy(tags, m.Tags)
		m.Tags = tags
	}
	return m
}

func cloneProgram(p model.Program) model.Program {
	p.Modules = copyStrings(p.Modules)
	p.Facilitators = copyStrings(p.Facilitators)
	return p
}

func cloneSession(sess model.Session) model.Session {
	sess.Attendees = copyStrings(sess.Attendees)
	return sess
}
