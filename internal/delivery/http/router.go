package http

import (
	"net/http"

	"wmhn-clinic-api/internal/delivery/http/handler"
	"wmhn-clinic-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

const doctorIDPattern = "{id:[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}}"

type Router struct {
	router             *mux.Router
	doctorHandler      *handler.DoctorHandler
	adminDoctorHandler *handler.AdminDoctorHandler
	submissionHandler  *handler.SubmissionHandler
	auditLogHandler    *handler.AuditLogHandler
	authHandler        *handler.AuthHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	sentryMiddleware   *middleware.SentryMiddleware
	metricsMiddleware  *middleware.MetricsMiddleware
	metricsHandler     http.Handler
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	adminDoctorHandler *handler.AdminDoctorHandler,
	submissionHandler *handler.SubmissionHandler,
	auditLogHandler *handler.AuditLogHandler,
	authHandler *handler.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	sentryMiddleware *middleware.SentryMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		doctorHandler:      doctorHandler,
		adminDoctorHandler: adminDoctorHandler,
		submissionHandler:  submissionHandler,
		auditLogHandler:    auditLogHandler,
		authHandler:        authHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		sentryMiddleware:   sentryMiddleware,
		metricsMiddleware:  metricsMiddleware,
		metricsHandler:     metricsHandler,
	}
}

// Setup registers every route. CORS wraps the whole router rather than being
// route middleware: preflight OPTIONS requests match no route, and mux only
// runs middleware for matched routes.
func (r *Router) Setup() http.Handler {
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// Form endpoints keep the paths the site already posts to
	r.router.HandleFunc("/api/contact", r.submissionHandler.Contact).Methods(http.MethodPost)
	r.router.HandleFunc("/api/referral", r.submissionHandler.Referral).Methods(http.MethodPost)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public directory
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/search", r.doctorHandler.SearchDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{slug}", r.doctorHandler.GetDoctorBySlug).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.adminDoctorHandler.ListDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors", r.adminDoctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/new", r.adminDoctorHandler.NewDoctorForm).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/"+doctorIDPattern, r.adminDoctorHandler.GetDoctorForm).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/"+doctorIDPattern, r.adminDoctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/"+doctorIDPattern+"/active", r.adminDoctorHandler.ToggleDoctorActive).Methods(http.MethodPatch)
	admin.HandleFunc("/doctors/"+doctorIDPattern, r.adminDoctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(r.sentryMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)

	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
