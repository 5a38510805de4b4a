package api

import (
	"net/http"

	"github.com/coachdesk/coachdesk/pkg/httputil"
)

// login handles POST /api/v1/auth/login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	result, err := s.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, result, "Login successful")
}

// me handles GET /api/v1/auth/me
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	user, err := s.service.Me(r.Context(), httputil.BearerToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, user, "User retrieved successfully")
}
