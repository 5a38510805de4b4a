package api

import (
	"net/http"

	"github.com/coachdesk/coachdesk/pkg/httputil"
	"github.com/coachdesk/coachdesk/pkg/model"
	"github.com/coachdesk/coachdesk/pkg/store"
)

// listModules handles GET /api/v1/modules
func (s *Server) listModules(w http.ResponseWriter, r *http.Request) {
	filter := store.ModuleFilter{
		Tag:         model.ModuleTag(httputil.ParseQueryString(r, "tag", "")),
		Status:      model.ModuleStatus(httputil.ParseQueryString(r, "status", "")),
		AccessLevel: model.AccessLevel(httputil.ParseQueryString(r, "access_level", "")),
		Search:      httputil.ParseQueryString(r, "search", ""),
	}

	modules, err := s.service.ListModules(r.Context(), httputil.BearerToken(r), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, modules, "Modules retrieved successfully")
}

// createModule handles POST /api/v1/modules
func (s *Server) createModule(w http.ResponseWriter, r *http.Request) {
	var payload model.Module
	if !httputil.ParseJSONOrError(w, r, &payload) {
		return
	}

	module, err := s.service.CreateModule(r.Context(), httputil.BearerToken(r), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteCreated(w, module, "Module created successfully")
}

// getModule handles GET /api/v1/modules/{id}
func (s *Server) getModule(w http.ResponseWriter, r *http.Request) {
	vars := httputil.GetPathVars(r)

	module, err := s.service.GetModule(r.Context(), httputil.BearerToken(r), vars["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, module, "Module retrieved successfully")
}

// updateModule handles PUT /api/v1/modules/{id}
func (s *Server) updateModule(w http.ResponseWriter, r *http.Request) {
	vars := httputil.GetPathVars(r)

	var patch store.ModulePatch
	if !httputil.ParseJSONOrError(w, r, &patch) {
		return
	}

	module, err := s.service.UpdateModule(r.Context(), httputil.BearerToken(r), vars["id"], patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, module, "Module updated successfully")
}

// publishModule handles POST /api/v1/modules/{id}/publish
func (s *Server) publishModule(w http.ResponseWriter, r *http.Request) {
	vars := httputil.GetPathVars(r)

	module, err := s.service.PublishModule(r.Context(), httputil.BearerToken(r), vars["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteData(w, module, "Module published successfully")
}
