// Package analytics computes the admin dashboard aggregates and keeps the
// business-level Prometheus gauges fresh.
package analytics

import (
	"time"

	"github.com/coachdesk/coachdesk/pkg/model"
	"github.com/coachdesk/coachdesk/pkg/store"
)

// Overview computes the dashboard stats from the current store contents.
// Active coaches counts accounts with a coach or facilitator role, matching
// the prototype's behavior regardless of account status.
func Overview(st *store.Store) model.DashboardStats {
	return overviewAt(st, time.Now())
}

func overviewAt(st *store.Store, now time.Time) model.DashboardStats {
	cutoff := now.AddDate(0, 0, -30)

	signups := 0
	coaches := 0
	for _, u := range st.ListUsers(store.UserFilter{}) {
		if u.CreatedAt.After(cutoff) {
			signups++
		}
		if u.Role == model.RoleCoach || u.Role == model.RoleFacilitator {
			coaches++
		}
	}

	_, modules, _, _ := st.Counts()

	return model.DashboardStats{
		NewSignups30Days: signups,
		TotalModules:     modules,
		ActiveCoaches:    coaches,
		UpcomingSessions: len(st.ListSessions(store.SessionFilter{Upcoming: true})),
	}
}
