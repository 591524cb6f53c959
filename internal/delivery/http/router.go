package http

import (
	"net/http"

	"clinic-backoffice/internal/delivery/http/handler"
	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/internal/domain/entity"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	operatorChatHandler *handler.OperatorChatHandler
	patientChatHandler  *handler.PatientChatHandler
	adminHandler        *handler.AdminHandler
	categoryHandler     *handler.CategoryHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	roleMiddleware      *middleware.RoleMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	operatorChatHandler *handler.OperatorChatHandler,
	patientChatHandler *handler.PatientChatHandler,
	adminHandler *handler.AdminHandler,
	categoryHandler *handler.CategoryHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	roleMiddleware *middleware.RoleMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		operatorChatHandler: operatorChatHandler,
		patientChatHandler:  patientChatHandler,
		adminHandler:        adminHandler,
		categoryHandler:     categoryHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		roleMiddleware:      roleMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

// guarded returns a subrouter that requires a session and the given permission.
func (r *Router) guarded(parent *mux.Router, prefix string, perm entity.Permission) *mux.Router {
	sub := parent.PathPrefix(prefix).Subrouter()
	sub.Use(r.authMiddleware.Authenticate)
	sub.Use(r.roleMiddleware.Require(perm))
	return sub
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(middleware.Metrics)

	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Operator side of the support chat
	operator := r.guarded(api, "/operator-chat", entity.PermChatOperate)
	operator.HandleFunc("", r.operatorChatHandler.ListChats).Methods(http.MethodGet)
	operator.HandleFunc("/{id:[0-9]+}", r.operatorChatHandler.GetChat).Methods(http.MethodGet)
	operator.HandleFunc("/{id:[0-9]+}", r.operatorChatHandler.UpdateChat).Methods(http.MethodPatch)
	operator.HandleFunc("/{id:[0-9]+}", r.operatorChatHandler.SendMessage).Methods(http.MethodPost)
	operator.HandleFunc("/{id:[0-9]+}", r.operatorChatHandler.DeleteChat).Methods(http.MethodDelete)
	operator.HandleFunc("/{id:[0-9]+}/block", r.operatorChatHandler.BlockPatient).Methods(http.MethodPatch)

	patients := r.guarded(api, "/admin/patients", entity.PermChatOperate)
	patients.HandleFunc("/{id}/block", r.operatorChatHandler.BlockPatientByID).Methods(http.MethodPatch)

	// Patient side of the support chat
	patient := r.guarded(api, "/chat", entity.PermPatientChat)
	patient.HandleFunc("", r.patientChatHandler.GetMyChat).Methods(http.MethodGet)
	patient.HandleFunc("", r.patientChatHandler.OpenChat).Methods(http.MethodPost)
	patient.HandleFunc("/messages", r.patientChatHandler.SendMessage).Methods(http.MethodPost)

	// Back-office menu
	unread := r.guarded(api, "/admin/unread-counts", entity.PermUnreadCounts)
	unread.HandleFunc("", r.adminHandler.GetUnreadCounts).Methods(http.MethodGet)

	letters := r.guarded(api, "/admin/letters", entity.PermLettersManage)
	letters.HandleFunc("", r.adminHandler.GetAllLetters).Methods(http.MethodGet)
	letters.HandleFunc("/mark-all-read", r.adminHandler.MarkAllLettersRead).Methods(http.MethodPost)

	feedbacks := r.guarded(api, "/admin/feedbacks", entity.PermFeedbackModerate)
	feedbacks.HandleFunc("", r.adminHandler.GetAllFeedbacks).Methods(http.MethodGet)
	feedbacks.HandleFunc("/{id:[0-9]+}/verify", r.adminHandler.VerifyFeedback).Methods(http.MethodPatch)
	feedbacks.HandleFunc("/{id:[0-9]+}", r.adminHandler.DeleteFeedback).Methods(http.MethodDelete)

	categories := r.guarded(api, "/admin/service-categories", entity.PermCategoriesManage)
	categories.HandleFunc("", r.categoryHandler.GetCategoryTree).Methods(http.MethodGet)
	categories.HandleFunc("", r.categoryHandler.CreateCategory).Methods(http.MethodPost)
	categories.HandleFunc("/{id:[0-9]+}", r.categoryHandler.GetCategory).Methods(http.MethodGet)
	categories.HandleFunc("/{id:[0-9]+}", r.categoryHandler.UpdateCategory).Methods(http.MethodPut)
	categories.HandleFunc("/{id:[0-9]+}", r.categoryHandler.DeleteCategory).Methods(http.MethodDelete)

	auditLogs := r.guarded(api, "/admin/audit-logs", entity.PermAuditRead)
	auditLogs.HandleFunc("", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)
	auditLogs.HandleFunc("/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests need a matching route for the CORS middleware to run
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
