// Package model defines the domain types shared across the coachdesk
// service: users, content modules, programs, and scheduled sessions.
package model

import "time"

// Role is a user's privilege level, ordered from least to most privileged.
type Role string

const (
	RoleUser        Role = "user"
	RoleCoach       Role = "coach"
	RoleFacilitator Role = "facilitator"
	RoleAdmin       Role = "admin"
	RoleSuperAdmin  Role = "superadmin"
)

var roleRanks = map[Role]int{
	RoleUser:        0,
	RoleCoach:       1,
	RoleFacilitator: 2,
	RoleAdmin:       3,
	RoleSuperAdmin:  4,
}

// Rank returns the numeric privilege rank of the role. Unknown roles rank
// below every valid role.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether the role carries at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return r.Valid() && r.Rank() >= other.Rank()
}

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// UserStatus is the lifecycle state of a user account.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
	UserInvited  UserStatus = "invited"
)

// Valid reports whether the status is one of the enumerated values.
func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserInactive, UserInvited:
		return true
	}
	return false
}

// ModuleStatus is the publication state of a content module.
type ModuleStatus string

const (
	ModuleDraft     ModuleStatus = "draft"
	ModulePublished ModuleStatus = "published"
	ModuleArchived  ModuleStatus = "archived"
)

// Valid reports whether the status is one of the enumerated values.
func (s ModuleStatus) Valid() bool {
	switch s {
	case ModuleDraft, ModulePublished, ModuleArchived:
		return true
	}
	return false
}

// AccessLevel constrains which roles may read a module, independent of
// upload and publish rights.
type AccessLevel string

const (
	AccessAdmin        AccessLevel = "admin"
	AccessFacilitators AccessLevel = "facilitators"
	AccessPublic       AccessLevel = "public"
)

// Valid reports whether the access level is one of the enumerated values.
func (a AccessLevel) Valid() bool {
	switch a {
	case AccessAdmin, AccessFacilitators, AccessPublic:
		return true
	}
	return false
}

// ProgramType classifies a coaching program.
type ProgramType string

const (
	ProgramOneOnOne      ProgramType = "one_on_one"
	ProgramWorkshop      ProgramType = "workshop"
	ProgramCertification ProgramType = "certification"
)

// Valid reports whether the type is one of the enumerated values.
func (t ProgramType) Valid() bool {
	switch t {
	case ProgramOneOnOne, ProgramWorkshop, ProgramCertification:
		return true
	}
	return false
}

// ModuleTag labels the coaching format a module targets.
type ModuleTag string

const (
	TagOneOnOne    ModuleTag = "1-on-1"
	TagTeam        ModuleTag = "team"
	TagFacilitator ModuleTag = "facilitator"
)

// Profile holds free-form user profile data.
type Profile struct {
	Bio            string   `json:"bio,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
}

// User is a platform account. PasswordHash is credential material and is
// never serialized.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	PasswordHash string     `json:"-"`
	Profile      Profile    `json:"profile"`
	Tags         []string   `json:"tags"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActiveAt time.Time  `json:"last_active_at"`
}

// Sanitized returns a copy of the user with credential material stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// ModuleFile describes an uploaded file attached to a module. Only the
// metadata lives here; file transport is outside this service.
type ModuleFile struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Mimetype string `json:"mimetype"`
	Size     int64  `json:"size"`
}

// Module is a unit of coaching content.
type Module struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Files       []ModuleFile `json:"files"`
	Tags        []ModuleTag  `json:"tags"`
	AccessLevel AccessLevel  `json:"access_level"`
	AuthorID    string       `json:"author_id"`
	Status      ModuleStatus `json:"status"`
	Version     int          `json:"version"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// HasTag reports whether the module carries the given tag.
func (m *Module) HasTag(tag ModuleTag) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// EnrollmentSettings controls how users join a program.
type EnrollmentSettings struct {
	Open     bool `json:"open"`
	Capacity int  `json:"capacity,omitempty"`
}

// Program groups modules and facilitators under a coaching format. Module
// and facilitator ids are loose references; referential integrity is not
// enforced.
type Program struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Type               ProgramType        `json:"type"`
	Description        string             `json:"description"`
	Modules            []string           `json:"modules"`
	Facilitators       []string           `json:"facilitators"`
	EnrollmentSettings EnrollmentSettings `json:"enrollment_settings"`
	CreatedAt          time.Time          `json:"created_at"`
}

// Session is a scheduled event tied to a program and a facilitator.
// Attendees may exceed Capacity; enforcement is deliberately absent.
type Session struct {
	ID            string    `json:"id"`
	ProgramID     string    `json:"program_id"`
	Title         string    `json:"title"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	FacilitatorID string    `json:"facilitator_id"`
	Location      string    `json:"location"`
	Capacity      int       `json:"capacity"`
	Attendees     []string  `json:"attendees"`
	CreatedAt     time.Time `json:"created_at"`
}

// DashboardStats is the admin overview aggregate.
type DashboardStats struct {
	NewSignups30Days int `json:"newSignups30Days"`
	TotalModules     int `json:"totalModules"`
	ActiveCoaches    int `json:"activeCoaches"`
	UpcomingSessions int `json:"upcomingSessions"`
}
