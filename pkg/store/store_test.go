package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/coachdesk/pkg/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	return s
}

func mustCreateUser(t *testing.T, s *Store, u model.User) model.User {
	t.Helper()
	created, err := s.CreateUser(&u)
	require.NoError(t, err)
	return created
}

func TestCreateUserAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)

	first := mustCreateUser(t, s, model.User{Name: "A", Email: "a@example.com", Role: model.RoleUser})
	second := mustCreateUser(t, s, model.User{Name: "B", Email: "b@example.com", Role: model.RoleCoach})

	assert.Equal(t, "u1", first.ID)
	assert.Equal(t, "u2", second.ID)

	got, err := s.GetUser("u2")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
}

func TestCreateUserFillsEmptyTimestamps(t *testing.T) {
	s := newTestStore(t)

	created := mustCreateUser(t, s, model.User{Name: "A", Email: "a@example.com"})
	assert.Equal(t, s.now(), created.CreatedAt)
	assert.Equal(t, s.now(), created.LastActiveAt)

	joined := s.now().AddDate(0, -6, 0)
	seeded := mustCreateUser(t, s, model.User{Name: "B", Email: "b@example.com", CreatedAt: joined})
	assert.Equal(t, joined, seeded.CreatedAt)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, model.User{Name: "A", Email: "a@example.com"})

	_, err := s.CreateUser(&model.User{Name: "Imposter", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	assert.Len(t, s.ListUsers(UserFilter{}), 1)
}

func TestGetUserByEmail(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, model.User{Name: "A", Email: "a@example.com"})

	got, err := s.GetUserByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = s.GetUserByEmail("missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsersFilters(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, model.User{Name: "Ada Lovelace", Email: "ada@example.com", Role: model.RoleCoach, Status: model.UserActive})
	mustCreateUser(t, s, model.User{Name: "Grace Hopper", Email: "grace@example.com", Role: model.RoleFacilitator, Status: model.UserActive})
	mustCreateUser(t, s, model.User{Name: "Alan Turing", Email: "alan@example.com", Role: model.RoleCoach, Status: model.UserInvited})

	coaches := s.ListUsers(UserFilter{Role: model.RoleCoach})
	require.Len(t, coaches, 2)
	assert.Equal(t, "u1", coaches[0].ID)
	assert.Equal(t, "u3", coaches[1].ID)

	activeCoaches := s.ListUsers(UserFilter{Role: model.RoleCoach, Status: model.UserActive})
	require.Len(t, activeCoaches, 1)
	assert.Equal(t, "u1", activeCoaches[0].ID)

	// Search matches name or email, case-insensitively.
	assert.Len(t, s.ListUsers(UserFilter{Search: "LOVELACE"}), 1)
	assert.Len(t, s.ListUsers(UserFilter{Search: "a"}), 3)
	assert.Len(t, s.ListUsers(UserFilter{Search: "grace@"}), 1)
	assert.Empty(t, s.ListUsers(UserFilter{Search: "nobody"}))
}

func TestUpdateUserMergesPatch(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, model.User{Name: "Ada", Email: "ada@example.com", Role: model.RoleUser, Status: model.UserInvited})

	name := "Ada Lovelace"
	role := model.RoleCoach
	updated, err := s.UpdateUser("u1", UserPatch{Name: &name, Role: &role})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, model.RoleCoach, updated.Role)
	// Untouched fields survive the merge.
	assert.Equal(t, "ada@example.com", updated.Email)
	assert.Equal(t, model.UserInvited, updated.Status)
}

func TestUpdateUserUnknownIDLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, model.User{Name: "Ada", Email: "ada@example.com"})

	name := "Ghost"
	_, err := s.UpdateUser("u99", UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	users := s.ListUsers(UserFilter{})
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].Name)
}

func TestUpdateUserRejectsDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, model.User{Name: "A", Email: "a@example.com"})
	mustCreateUser(t, s, model.User{Name: "B", Email: "b@example.com"})

	taken := "a@example.com"
	_, err := s.UpdateUser("u2", UserPatch{Email: &taken})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Re-asserting your own email is not a conflict.
	_, err = s.UpdateUser("u1", UserPatch{Email: &taken})
	assert.NoError(t, err)
}

func TestCreateModuleTimestamps(t *testing.T) {
	s := newTestStore(t)

	created := s.CreateModule(&model.Module{Title: "Listening"})
	assert.Equal(t, "m1", created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestUpdateModuleRefreshesUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	created := s.CreateModule(&model.Module{Title: "Listening"})

	later := created.CreatedAt.Add(time.Hour)
	s.now = func() time.Time { return later }

	title := "Active Listening"
	updated, err := s.UpdateModule("m1", ModulePatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Active Listening", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)
}

func TestListModulesFilters(t *testing.T) {
	s := newTestStore(t)
	s.CreateModule(&model.Module{
		Title:       "Team Retros",
		Description: "Facilitation guide",
		Tags:        []model.ModuleTag{model.TagTeam, model.TagFacilitator},
		AccessLevel: model.AccessFacilitators,
		Status:      model.ModulePublished,
	})
	s.CreateModule(&model.Module{
		Title:       "Pricing",
		Description: "Internal guidance",
		Tags:        []model.ModuleTag{model.TagFacilitator},
		AccessLevel: model.AccessAdmin,
		Status:      model.ModuleDraft,
	})

	assert.Len(t, s.ListModules(ModuleFilter{Tag: model.TagFacilitator}), 2)
	assert.Len(t, s.ListModules(ModuleFilter{Tag: model.TagTeam}), 1)
	assert.Len(t, s.ListModules(ModuleFilter{Status: model.ModuleDraft}), 1)
	assert.Len(t, s.ListModules(ModuleFilter{AccessLevel: model.AccessAdmin}), 1)
	assert.Len(t, s.ListModules(ModuleFilter{Tag: model.TagFacilitator, Status: model.ModulePublished}), 1)
	assert.Len(t, s.ListModules(ModuleFilter{Search: "guid"}), 2)
	assert.Len(t, s.ListModules(ModuleFilter{Search: "RETROS"}), 1)
	assert.Empty(t, s.ListModules(ModuleFilter{Search: "missing"}))
}

func TestProgramsCRUD(t *testing.T) {
	s := newTestStore(t)
	created := s.CreateProgram(&model.Program{Title: "Exec Track", Type: model.ProgramOneOnOne})
	assert.Equal(t, "p1", created.ID)

	s.CreateProgram(&model.Program{Title: "Cert Cohort", Type: model.ProgramCertification})

	assert.Len(t, s.ListPrograms(ProgramFilter{}), 2)
	certs := s.ListPrograms(ProgramFilter{Type: model.ProgramCertification})
	require.Len(t, certs, 1)
	assert.Equal(t, "p2", certs[0].ID)

	desc := "Updated"
	updated, err := s.UpdateProgram("p1", ProgramPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.Description)
	assert.Equal(t, "Exec Track", updated.Title)

	_, err = s.GetProgram("p99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSessionsSortedAndFiltered(t *testing.T) {
	s := newTestStore(t)
	now := s.now()

	s.CreateSession(&model.Session{Title: "Later", ProgramID: "p1", StartTime: now.AddDate(0, 0, 21)})
	s.CreateSession(&model.Session{Title: "Past", ProgramID: "p1", StartTime: now.AddDate(0, 0, -7)})
	s.CreateSession(&model.Session{Title: "Soon", ProgramID: "p2", StartTime: now.AddDate(0, 0, 7)})

	all := s.ListSessions(SessionFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Past", "Soon", "Later"}, []string{all[0].Title, all[1].Title, all[2].Title})

	upcoming := s.ListSessions(SessionFilter{Upcoming: true})
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Soon", upcoming[0].Title)
	assert.Equal(t, "Later", upcoming[1].Title)

	p1 := s.ListSessions(SessionFilter{ProgramID: "p1"})
	require.Len(t, p1, 2)
	assert.Equal(t, "Past", p1[0].Title)
}

func TestUpdateSessionMergesPatch(t *testing.T) {
	s := newTestStore(t)
	created := s.CreateSession(&model.Session{Title: "Kickoff", ProgramID: "p1", Capacity: 10})

	location := "Remote"
	attendees := []string{"u5", "u6"}
	updated, err := s.UpdateSession(created.ID, SessionPatch{Location: &location, Attendees: &attendees})
	require.NoError(t, err)

	assert.Equal(t, "Remote", updated.Location)
	assert.Equal(t, []string{"u5", "u6"}, updated.Attendees)
	assert.Equal(t, 10, updated.Capacity)
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, model.User{Name: "A", Email: "a@example.com"})
	s.CreateModule(&model.Module{Title: "M"})
	s.CreateModule(&model.Module{Title: "N"})
	s.CreateProgram(&model.Program{Title: "P"})

	users, modules, programs, sessions := s.Counts()
	assert.Equal(t, 1, users)
	assert.Equal(t, 2, modules)
	assert.Equal(t, 1, programs)
	assert.Equal(t, 0, sessions)
}

func TestListModulesReturnsCopies(t *testing.T) {
	s := NewSeeded()

	listed := s.ListModules(ModuleFilter{})
	require.NotEmpty(t, listed)
	require.NotEmpty(t, listed[0].Tags)

	// Writing through a returned slice must not reach the store.
	listed[0].Tags[0] = "hijacked"

	got, err := s.GetModule(listed[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.TagOneOnOne, got.Tags[0])
}

func TestGetModuleReturnsCopies(t *testing.T) {
	s := NewSeeded()

	first, err := s.GetModule("m2")
	require.NoError(t, err)
	require.NotEmpty(t, first.Files)
	first.Files[0].Filename = "tampered.pdf"
	first.Tags[0] = "hijacked"

	second, err := s.GetModule("m2")
	require.NoError(t, err)
	assert.Equal(t, "retro-playbook.pdf", second.Files[0].Filename)
	assert.Equal(t, model.TagTeam, second.Tags[0])
}

func TestUserReadsReturnCopies(t *testing.T) {
	s := NewSeeded()

	fetched, err := s.GetUser("u1")
	require.NoError(t, err)
	require.NotEmpty(t, fetched.Tags)
	require.NotEmpty(t, fetched.Profile.Certifications)
	fetched.Tags[0] = "hijacked"
	fetched.Profile.Certifications[0] = "forged"

	again, err := s.GetUser("u1")
	require.NoError(t, err)
	assert.Equal(t, "operations", again.Tags[0])
	assert.Equal(t, "ICF PCC", again.Profile.Certifications[0])

	listed := s.ListUsers(UserFilter{})
	listed[0].Tags[0] = "hijacked"
	again, err = s.GetUser("u1")
	require.NoError(t, err)
	assert.Equal(t, "operations", again.Tags[0])
}

func TestProgramAndSessionReadsReturnCopies(t *testing.T) {
	s := NewSeeded()

	program, err := s.GetProgram("p2")
	require.NoError(t, err)
	program.Modules[0] = "m99"
	program.Facilitators[0] = "u99"

	again, err := s.GetProgram("p2")
	require.NoError(t, err)
	assert.Equal(t, "m1", again.Modules[0])
	assert.Equal(t, "u3", again.Facilitators[0])

	sessions := s.ListSessions(SessionFilter{ProgramID: "p2"})
	require.NotEmpty(t, sessions[0].Attendees)
	sessions[0].Attendees[0] = "gatecrasher"

	session, err := s.GetSession(sessions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "u5", session.Attendees[0])
}

func TestCreateCopiesCallerSlices(t *testing.T) {
	s := newTestStore(t)

	tags := []model.ModuleTag{model.TagTeam}
	created := s.CreateModule(&model.Module{Title: "M", Tags: tags})

	// Mutating the caller's slice after create must not reach the store.
	tags[0] = "hijacked"

	got, err := s.GetModule(created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TagTeam, got.Tags[0])
}

func TestUpdateCopiesPatchSlices(t *testing.T) {
	s := newTestStore(t)
	created := s.CreateSession(&model.Session{Title: "Kickoff", ProgramID: "p1"})

	attendees := []string{"u5"}
	_, err := s.UpdateSession(created.ID, SessionPatch{Attendees: &attendees})
	require.NoError(t, err)

	attendees[0] = "gatecrasher"

	got, err := s.GetSession(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "u5", got.Attendees[0])
}

func TestSeededFixture(t *testing.T) {
	s := NewSeeded()

	users, modules, programs, sessions := s.Counts()
	assert.Equal(t, 5, users)
	assert.Equal(t, 4, modules)
	assert.Equal(t, 2, programs)
	assert.Equal(t, 3, sessions)

	admin, err := s.GetUserByEmail("marcus@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	// Two of the three seeded sessions start in the future.
	assert.Len(t, s.ListSessions(SessionFilter{Upcoming: true}), 2)
}

func TestSeedPanicsOnBadFixture(t *testing.T) {
	s := NewSeeded()

	// Re-running the fixture collides on every seeded email.
	assert.Panics(t, func() { s.seed() })
}
