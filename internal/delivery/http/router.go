package http

import (
	"net/http"

	"hospital-directory/internal/delivery/http/handler"
	"hospital-directory/internal/delivery/http/middleware"
	"hospital-directory/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router          *mux.Router
	searchHandler   *handler.SearchHandler
	authHandler     *handler.AuthHandler
	roleHandler     *handler.RoleHandler
	auditLogHandler *handler.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	searchHandler *handler.SearchHandler,
	authHandler *handler.AuthHandler,
	roleHandler *handler.RoleHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		searchHandler:   searchHandler,
		authHandler:     authHandler,
		roleHandler:     roleHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// The unversioned prefix is what the search page calls; /api/v1 mirrors it.
	for _, prefix := range []string{"/api", "/api/v1"} {
		r.mount(r.router.PathPrefix(prefix).Subrouter())
	}

	r.router.Use(metrics.Middleware)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) mount(api *mux.Router) {
	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Directory search (public)
	api.HandleFunc("/search", r.searchHandler.Search).Methods(http.MethodGet, http.MethodOptions)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Admin routes (protected - hospital admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireHospitalAdmin)

	// Role management
	admin.HandleFunc("/users", r.roleHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/role", r.roleHandler.SetRole).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/role", r.roleHandler.RemoveRole).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{id}/role-history", r.auditLogHandler.GetRoleHistory).Methods(http.MethodGet)

	// Audit logs
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
