package api

import (
	"net/http"

	"github.com/coachdesk/coachdesk/pkg/httputil"
	"github.com/coachdesk/coachdesk/pkg/model"
	"github.com/coachdesk/coachdesk/pkg/store"
)

// listPrograms handles GET /api/v1/programs
func (s *Server) listPrograms(w http.ResponseWriter, r *http.Request) {
	filter := store.ProgramFilter{
		Type: model.ProgramType(httputil.ParseQueryString(r, "type", "")),
	}

	programs, err := s.service.ListPrograms(r.Context(), httputil.BearerToken(r), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, programs, "Programs retrieved successfully")
}

// createProgram handles POST /api/v1/programs
func (s *Server) createProgram(w http.ResponseWriter, r *http.Request) {
	var payload model.Program
	if !httputil.ParseJSONOrError(w, r, &payload) {
		return
	}

	program, err := s.service.CreateProgram(r.Context(), httputil.BearerToken(r), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteCreated(w, program, "Program created successfully")
}

// getProgram handles GET /api/v1/programs/{id}
func (s *Server) getProgram(w http.ResponseWriter, r *http.Request) {
	vars := httputil.GetPathVars(r)

	program, err := s.service.GetProgram(r.Context(), httputil.BearerToken(r), vars["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, program, "Program retrieved successfully")
}

// updateProgram handles PUT /api/v1/programs/{id}
func (s *Server) updateProgram(w http.ResponseWriter, r *http.Request) {
	vars := httputil.GetPathVars(r)

	var patch store.ProgramPatch
	if !httputil.ParseJSONOrError(w, r, &patch) {
		return
	}

	program, err := s.service.UpdateProgram(r.Context(), httputil.BearerToken(r), vars["id"], patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, program, "Program updated successfully")
}
