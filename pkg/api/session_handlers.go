package api

import (
	"net/http"

	"github.com/coachdesk/coachdesk/pkg/httputil"
	"github.com/coachdesk/coachdesk/pkg/model"
	"github.com/coachdesk/coachdesk/pkg/store"
)

// listSessions handles GET /api/v1/sessions
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	filter := store.SessionFilter{
		ProgramID: httputil.ParseQueryString(r, "program_id", ""),
		Upcoming:  httputil.ParseQueryBool(r, "upcoming"),
	}

	sessions, err := s.service.ListSessions(r.Context(), httputil.BearerToken(r), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, sessions, "Sessions retrieved successfully")
}

// createSession handles POST /api/v1/sessions
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var payload model.Session
	if !httputil.ParseJSONOrError(w, r, &payload) {
		return
	}

	session, err := s.service.CreateSession(r.Context(), httputil.BearerToken(r), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteCreated(w, session, "Session created successfully")
}

// getSession handles GET /api/v1/sessions/{id}
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	vars := httputil.GetPathVars(r)

	session, err := s.service.GetSession(r.Context(), httputil.BearerToken(r), vars["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, session, "Session retrieved successfully")
}

// updateSession handles PUT /api/v1/sessions/{id}
func (s *Server) updateSession(w http.ResponseWriter, r *http.Request) {
	vars := httputil.GetPathVars(r)

	var patch store.SessionPatch
	if !httputil.ParseJSONOrError(w, r, &patch) {
		return
	}

	session, err := s.service.UpdateSession(r.Context(), httputil.BearerToken(r), vars["id"], patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, session, "Session updated successfully")
}
