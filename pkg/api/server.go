// Package api exposes the coachdesk service over HTTP. Handlers parse
// requests and forward token plus payload to the service layer; they
// implement no permission logic of their own.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/coachdesk/coachdesk/pkg/httputil"
	"github.com/coachdesk/coachdesk/pkg/service"
)

// Server is the admin API server.
type Server struct {
	service *service.Service
	router  *mux.Router
}

// NewServer creates the API server and registers all routes.
func NewServer(svc *service.Service) *Server {
	s := &Server{
		service: svc,
		router:  mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router.PathPrefix("/api/v1").Subrouter()

	// Auth routes
	r.HandleFunc("/auth/login", s.login).Methods("POST")
	r.HandleFunc("/auth/me", s.me).Methods("GET")

	// User routes
	r.HandleFunc("/users", s.listUsers).Methods("GET")
	r.HandleFunc("/users/{id}", s.getUser).Methods("GET")
	r.HandleFunc("/users/{id}", s.updateUser).Methods("PUT")

	// Module routes
	r.HandleFunc("/modules", s.listModules).Methods("GET")
	r.HandleFunc("/modules", s.createModule).Methods("POST")
	r.HandleFunc("/modules/{id}", s.getModule).Methods("GET")
	r.HandleFunc("/modules/{id}", s.updateModule).Methods("PUT")
	r.HandleFunc("/modules/{id}/publish", s.publishModule).Methods("POST")

	// Program routes
	r.HandleFunc("/programs", s.listPrograms).Methods("GET")
	r.HandleFunc("/programs", s.createProgram).Methods("POST")
	r.HandleFunc("/programs/{id}", s.getProgram).Methods("GET")
	r.HandleFunc("/programs/{id}", s.updateProgram).Methods("PUT")

	// Session routes
	r.HandleFunc("/sessions", s.listSessions).Methods("GET")
	r.HandleFunc("/sessions", s.createSession).Methods("POST")
	r.HandleFunc("/sessions/{id}", s.getSession).Methods("GET")
	r.HandleFunc("/sessions/{id}", s.updateSession).Methods("PUT")

	// Analytics routes
	r.HandleFunc("/analytics/overview", s.dashboardStats).Methods("GET")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// writeServiceError maps the service failure taxonomy onto status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	svcErr := service.AsError(err)
	if svcErr == nil {
		httputil.WriteInternalError(w, err)
		return
	}
	switch svcErr.Kind {
	case service.KindUnauthenticated:
		httputil.WriteUnauthorized(w, svcErr.Message)
	case service.KindForbidden:
		httputil.WriteForbidden(w, svcErr.Message)
	case service.KindNotFound:
		httputil.WriteNotFoundError(w, svcErr.Message)
	case service.KindValidation:
		httputil.WriteBadRequest(w, svcErr.Message)
	default:
		httputil.WriteErrorMessage(w, http.StatusInternalServerError, svcErr.Message)
	}
}
