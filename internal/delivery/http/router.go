package http

import (
	"net/http"
	"time"

	"hospital-management-backend/internal/delivery/http/handler"
	"hospital-management-backend/internal/delivery/http/middleware"
	"hospital-management-backend/internal/domain/entity"
	"hospital-management-backend/pkg/response"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router             *mux.Router
	userHandler        *handler.UserHandler
	appointmentHandler *handler.AppointmentHandler
	messageHandler     *handler.MessageHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	metricsMiddleware  *middleware.MetricsMiddleware
}

func NewRouter(
	userHandler *handler.UserHandler,
	appointmentHandler *handler.AppointmentHandler,
	messageHandler *handler.MessageHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		userHandler:        userHandler,
		appointmentHandler: appointmentHandler,
		messageHandler:     messageHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		metricsMiddleware:  metricsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check and metrics
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// User routes (public)
	user := api.PathPrefix("/user").Subrouter()
	user.HandleFunc("/patient/register", r.userHandler.RegisterPatient).Methods(http.MethodPost)
	user.HandleFunc("/login", r.userHandler.Login).Methods(http.MethodPost)
	user.HandleFunc("/doctors", r.userHandler.GetAllDoctors).Methods(http.MethodGet)
	user.HandleFunc("/doctor/{id}", r.userHandler.GetDoctor).Methods(http.MethodGet)

	// User routes (admin only)
	userAdmin := api.PathPrefix("/user").Subrouter()
	userAdmin.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	userAdmin.HandleFunc("/admin/addnew", r.userHandler.AddNewAdmin).Methods(http.MethodPost)
	userAdmin.HandleFunc("/doctor/addnew", r.userHandler.AddNewDoctor).Methods(http.MethodPost)
	userAdmin.HandleFunc("/doctor/{id}", r.userHandler.UpdateDoctor).Methods(http.MethodPut)
	userAdmin.HandleFunc("/admin/me", r.userHandler.GetSelf).Methods(http.MethodGet)
	userAdmin.HandleFunc("/admin/logout", r.userHandler.LogoutAdmin).Methods(http.MethodGet)
	userAdmin.HandleFunc("/admin/auditlogs", r.auditLogHandler.GetAll).Methods(http.MethodGet)
	userAdmin.HandleFunc("/admin/auditlogs/{id}", r.auditLogHandler.GetByID).Methods(http.MethodGet)

	// User routes (patient only)
	userPatient := api.PathPrefix("/user").Subrouter()
	userPatient.Use(r.authMiddleware.RequireRole(entity.RolePatient))
	userPatient.HandleFunc("/patient/me", r.userHandler.GetSelf).Methods(http.MethodGet)
	userPatient.HandleFunc("/patient/logout", r.userHandler.LogoutPatient).Methods(http.MethodGet)

	// Appointment routes
	appointmentPatient := api.PathPrefix("/appointment").Subrouter()
	appointmentPatient.Use(r.authMiddleware.RequireRole(entity.RolePatient))
	appointmentPatient.HandleFunc("/post", r.appointmentHandler.Create).Methods(http.MethodPost)

	appointmentAdmin := api.PathPrefix("/appointment").Subrouter()
	appointmentAdmin.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	appointmentAdmin.HandleFunc("/getall", r.appointmentHandler.GetAll).Methods(http.MethodGet)
	appointmentAdmin.HandleFunc("/{id}", r.appointmentHandler.UpdateStatus).Methods(http.MethodPut)
	appointmentAdmin.HandleFunc("/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Message routes
	message := api.PathPrefix("/message").Subrouter()
	message.HandleFunc("/send", r.messageHandler.Send).Methods(http.MethodPost)

	messageAdmin := api.PathPrefix("/message").Subrouter()
	messageAdmin.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	messageAdmin.HandleFunc("/getall", r.messageHandler.GetAll).Methods(http.MethodGet)

	// Preflight requests carry no session and match no endpoint above.
	// Router middleware only runs on matched routes, so give OPTIONS a
	// catch-all; the CORS middleware answers it before this handler runs.
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "Service is healthy", map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
