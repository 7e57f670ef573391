package http

import (
	"net/http"

	"clinic-scheduling-api/internal/delivery/http/handler"
	"clinic-scheduling-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	slotHandler         *handler.SlotHandler
	appointmentHandler  *handler.AppointmentHandler
	availabilityHandler *handler.AvailabilityHandler
	slotAdminHandler    *handler.AppointmentSlotHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	slotHandler *handler.SlotHandler,
	appointmentHandler *handler.AppointmentHandler,
	availabilityHandler *handler.AvailabilityHandler,
	slotAdminHandler *handler.AppointmentSlotHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		slotHandler:         slotHandler,
		appointmentHandler:  appointmentHandler,
		availabilityHandler: availabilityHandler,
		slotAdminHandler:    slotAdminHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public clinic directory and slot views
	api.HandleFunc("/departments", r.doctorHandler.ListDepartments).Methods(http.MethodGet)
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/slots", r.slotHandler.GetAvailableSlots).Methods(http.MethodGet)
	api.HandleFunc("/appointments/slots", r.slotHandler.GetAvailableSlots).Methods(http.MethodGet)

	// Appointments (any authenticated role; ownership enforced in the
	// usecase layer)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}/reschedule", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPatch)

	// Doctor-side routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/appointments", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateAppointmentStatus).Methods(http.MethodPatch)
	doctor.HandleFunc("/availability", r.availabilityHandler.GetWorkingHours).Methods(http.MethodGet)
	doctor.HandleFunc("/availability", r.availabilityHandler.ReplaceAvailability).Methods(http.MethodPut)
	doctor.HandleFunc("/availability/windows", r.availabilityHandler.AddAvailabilityWindow).Methods(http.MethodPost)
	doctor.HandleFunc("/availability/windows/{id}", r.availabilityHandler.DeleteAvailabilityWindow).Methods(http.MethodDelete)
	doctor.HandleFunc("/working-hours", r.availabilityHandler.UpdateWorkingHours).Methods(http.MethodPut)
	doctor.HandleFunc("/slots", r.slotAdminHandler.ListSlots).Methods(http.MethodGet)
	doctor.HandleFunc("/slots", r.slotAdminHandler.CreateSlot).Methods(http.MethodPost)
	doctor.HandleFunc("/slots/{id}", r.slotAdminHandler.UpdateSlot).Methods(http.MethodPut)
	doctor.HandleFunc("/slots/{id}", r.slotAdminHandler.DeleteSlot).Methods(http.MethodDelete)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/slots", r.slotAdminHandler.CreateSlot).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{id}", r.slotAdminHandler.UpdateSlot).Methods(http.MethodPut)
	admin.HandleFunc("/slots/{id}", r.slotAdminHandler.DeleteSlot).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
