package store

import (
	"fmt"
	"time"

	"github.com/coachdesk/coachdesk/pkg/model"
)

// NewSeeded returns a store populated with the demo fixture the admin
// prototype ships with.
func NewSeeded() *Store {
	s := New()
	s.seed()
	return s
}

func (s *Store) seed() {
	now := s.now()

	users := []model.User{
		{
			Name:         "Marcus Webb",
			Email:        "marcus@example.com",
			Role:         model.RoleAdmin,
			PasswordHash: "$2b$10$seeded.demo.hash.marcus",
			Profile: model.Profile{
				Bio:            "Platform administrator and head of coaching operations.",
				Certifications: []string{"ICF PCC"},
			},
			Tags:         []string{"operations"},
			Status:       model.UserActive,
			CreatedAt:    now.AddDate(0, -8, 0),
			LastActiveAt: now.Add(-2 * time.Hour),
		},
		{
			Name:         "Sofia Reyes",
			Email:        "sofia@example.com",
			Role:         model.RoleSuperAdmin,
			PasswordHash: "$2b$10$seeded.demo.hash.sofia",
			Profile:      model.Profile{Bio: "Founder."},
			Tags:         []string{"leadership"},
			Status:       model.UserActive,
			CreatedAt:    now.AddDate(-1, 0, 0),
			LastActiveAt: now.Add(-30 * time.Minute),
		},
		{
			Name:         "Priya Natarajan",
			Email:        "priya@example.com",
			Role:         model.RoleFacilitator,
			PasswordHash: "$2b$10$seeded.demo.hash.priya",
			Profile: model.Profile{
				Bio:            "Leads team workshops and certification cohorts.",
				Phone:          "+1-555-0102",
				Certifications: []string{"ICF ACC", "EMCC Practitioner"},
			},
			Tags:         []string{"workshops"},
			Status:       model.UserActive,
			CreatedAt:    now.AddDate(0, -5, 0),
			LastActiveAt: now.Add(-26 * time.Hour),
		},
		{
			Name:         "Daniel Kim",
			Email:        "daniel@example.com",
			Role:         model.RoleCoach,
			PasswordHash: "$2b$10$seeded.demo.hash.daniel",
			Profile:      model.Profile{Bio: "1-on-1 executive coach."},
			Tags:         []string{"executive"},
			Status:       model.UserActive,
			CreatedAt:    now.AddDate(0, 0, -12),
			LastActiveAt: now.Add(-10 * time.Minute),
		},
		{
			Name:         "Lena Okafor",
			Email:        "lena@example.com",
			Role:         model.RoleUser,
			PasswordHash: "",
			Status:       model.UserInvited,
			CreatedAt:    now.AddDate(0, 0, -3),
			LastActiveAt: now.AddDate(0, 0, -3),
		},
	}
	for i := range users {
		if _, err := s.CreateUser(&users[i]); err != nil {
			panic(fmt.Sprintf("seed fixture user %s: %v", users[i].Email, err))
		}
	}

	modules := []model.Module{
		{
			Title:       "Foundations of Active Listening",
			Slug:        "foundations-active-listening",
			Description: "Core listening techniques for new coaches.",
			Tags:        []model.ModuleTag{model.TagOneOnOne},
			AccessLevel: model.AccessPublic,
			AuthorID:    "u1",
			Status:      model.ModulePublished,
			Version:     3,
		},
		{
			Title:       "Team Retrospective Playbook",
			Slug:        "team-retrospective-playbook",
			Description: "Facilitation guide for recurring team retrospectives.",
			Files: []model.ModuleFile{
				{ID: "f1", Filename: "retro-playbook.pdf", URL: "/files/retro-playbook.pdf", Mimetype: "application/pdf", Size: 482133},
			},
			Tags:        []model.ModuleTag{model.TagTeam, model.TagFacilitator},
			AccessLevel: model.AccessFacilitators,
			AuthorID:    "u3",
			Status:      model.ModulePublished,
			Version:     2,
		},
		{
			Title:       "Pricing and Contracts",
			Slug:        "pricing-and-contracts",
			Description: "Internal guidance on engagement pricing.",
			Tags:        []model.ModuleTag{model.TagFacilitator},
			AccessLevel: model.AccessAdmin,
			AuthorID:    "u2",
			Status:      model.ModuleDraft,
			Version:     1,
		},
		{
			Title:       "Team Kickoff Workshop",
			Slug:        "team-kickoff-workshop",
			Description: "Draft agenda and materials for team kickoffs.",
			Tags:        []model.ModuleTag{model.TagTeam},
			AccessLevel: model.AccessFacilitators,
			AuthorID:    "u3",
			Status:      model.ModuleDraft,
			Version:     1,
		},
	}
	for i := range modules {
		s.CreateModule(&modules[i])
	}

	programs := []model.Program{
		{
			Title:              "Executive Coaching Track",
			Type:               model.ProgramOneOnOne,
			Description:        "Six-month 1-on-1 engagement for senior leaders.",
			Modules:            []string{"m1"},
			Facilitators:       []string{"u4"},
			EnrollmentSettings: model.EnrollmentSettings{Open: true},
		},
		{
			Title:              "Facilitator Certification Cohort",
			Type:               model.ProgramCertification,
			Description:        "Quarterly certification program for new facilitators.",
			Modules:            []string{"m1", "m2"},
			Facilitators:       []string{"u3"},
			EnrollmentSettings: model.EnrollmentSettings{Open: false, Capacity: 16},
		},
	}
	for i := range programs {
		s.CreateProgram(&programs[i])
	}

	sessions := []model.Session{
		{
			ProgramID:     "p2",
			Title:         "Certification Cohort Kickoff",
			StartTime:     now.AddDate(0, 0, 7),
			EndTime:       now.AddDate(0, 0, 7).Add(2 * time.Hour),
			FacilitatorID: "u3",
			Location:      "Remote",
			Capacity:      16,
			Attendees:     []string{"u5"},
		},
		{
			ProgramID:     "p1",
			Title:         "Quarterly Review",
			StartTime:     now.AddDate(0, 0, -14),
			EndTime:       now.AddDate(0, 0, -14).Add(time.Hour),
			FacilitatorID: "u4",
			Location:      "Office 4B",
			Capacity:      2,
			Attendees:     []string{"u5"},
		},
		{
			ProgramID:     "p2",
			Title:         "Practice Facilitation Lab",
			StartTime:     now.AddDate(0, 0, 21),
			EndTime:       now.AddDate(0, 0, 21).Add(3 * time.Hour),
			FacilitatorID: "u3",
			Location:      "Remote",
			Capacity:      16,
		},
	}
	for i := range sessions {
		s.CreateSession(&sessions[i])
	}
}
