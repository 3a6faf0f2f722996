package http

import (
	"net/http"

	"doctor-directory/internal/delivery/http/handler"
	"doctor-directory/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	directoryHandler   *handler.DirectoryHandler
	sessionMiddleware  *middleware.SessionMiddleware
	loggerMiddleware   *middleware.LoggerMiddleware
	recoveryMiddleware *middleware.RecoveryMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	directoryHandler *handler.DirectoryHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	loggerMiddleware *middleware.LoggerMiddleware,
	recoveryMiddleware *middleware.RecoveryMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		directoryHandler:   directoryHandler,
		sessionMiddleware:  sessionMiddleware,
		loggerMiddleware:   loggerMiddleware,
		recoveryMiddleware: recoveryMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check (no session)
	r.router.HandleFunc("/api/v1/health", r.healthCheck).Methods(http.MethodGet)

	// Directory API
	api := r.router.PathPrefix("/api/v1/directory").Subrouter()
	api.Use(r.sessionMiddleware.Handle)
	// OPTIONS is matched so preflights reach the CORS middleware, which answers them
	api.HandleFunc("", r.directoryHandler.GetDirectory).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/specialities/toggle", r.directoryHandler.ToggleSpeciality).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/filters", r.directoryHandler.ClearFilters).Methods(http.MethodDelete, http.MethodOptions)

	// Directory page
	page := r.router.NewRoute().Subrouter()
	page.Use(r.sessionMiddleware.Handle)
	page.HandleFunc("/", r.directoryHandler.Page).Methods(http.MethodGet)
	page.HandleFunc("/filters/specialities/toggle", r.directoryHandler.ToggleSpecialityForm).Methods(http.MethodPost)
	page.HandleFunc("/filters/clear", r.directoryHandler.ClearFiltersForm).Methods(http.MethodPost)

	r.router.Use(r.loggerMiddleware.Handle)
	r.router.Use(r.recoveryMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
