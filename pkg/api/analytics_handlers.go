package api

import (
	"net/http"

	"github.com/coachdesk/coachdesk/pkg/httputil"
)

// dashboardStats handles GET /api/v1/analytics/overview
func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.DashboardStats(r.Context(), httputil.BearerToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, stats, "Analytics retrieved successfully")
}
