package api

import (
	"net/http"

	"github.com/coachdesk/coachdesk/pkg/httputil"
	"github.com/coachdesk/coachdesk/pkg/model"
	"github.com/coachdesk/coachdesk/pkg/store"
)

// listUsers handles GET /api/v1/users
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	filter := store.UserFilter{
		Role:   model.Role(httputil.ParseQueryString(r, "role", "")),
		Status: model.UserStatus(httputil.ParseQueryString(r, "status", "")),
		Search: httputil.ParseQueryString(r, "search", ""),
	}

	users, err := s.service.ListUsers(r.Context(), httputil.BearerToken(r), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, users, "Users retrieved successfully")
}

// getUser handles GET /api/v1/users/{id}
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	vars := httputil.GetPathVars(r)

	user, err := s.service.GetUser(r.Context(), httputil.BearerToken(r), vars["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, user, "User retrieved successfully")
}

// updateUser handles PUT /api/v1/users/{id}
func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	vars := httputil.GetPathVars(r)

	var patch store.UserPatch
	if !httputil.ParseJSONOrError(w, r, &patch) {
		return
	}

	user, err := s.service.UpdateUser(r.Context(), httputil.BearerToken(r), vars["id"], patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, user, "User updated successfully")
}
