package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"shiftmarket-backend/internal/security"
	"shiftmarket-backend/internal/service"
)

// NewRouter wires the full HTTP surface. Everything under /api requires a
// bearer token; /health does not.
func NewRouter(
	db *sql.DB,
	tokens security.TokenManager,
	marketplaceSvc service.MarketplaceService,
	notificationSvc service.NotificationService,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	health := NewHealthHandler(db)
	r.HandleFunc("/health", health.Check).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(mux.MiddlewareFunc(AuthMiddleware(tokens)))

	mh := NewMarketplaceHandler(marketplaceSvc)
	m := api.PathPrefix("/marketplace").Subrouter()
	m.HandleFunc("/open", mh.GetOpenRequests).Methods(http.MethodGet)
	m.HandleFunc("/my", mh.GetMyRequests).Methods(http.MethodGet)
	m.HandleFunc("/incoming", mh.GetIncomingRequests).Methods(http.MethodGet)
	m.HandleFunc("/approvals", mh.GetApprovalRequests).Methods(http.MethodGet)
	m.HandleFunc("/dashboard", mh.GetDashboard).Methods(http.MethodGet)
	m.HandleFunc("/swappable", mh.GetSwappableShifts).Methods(http.MethodGet)
	m.HandleFunc("/requests", mh.CreateShiftRequest).Methods(http.MethodPost)
	m.HandleFunc("/requests/{id:[0-9]+}/accept", mh.AcceptShiftRequest).Methods(http.MethodPost)
	m.HandleFunc("/requests/{id:[0-9]+}/respond", mh.RespondToProposal).Methods(http.MethodPost)
	m.HandleFunc("/requests/{id:[0-9]+}/admin-decision", mh.AdminDecision).Methods(http.MethodPost)
	m.HandleFunc("/requests/{id:[0-9]+}", mh.CancelShiftRequest).Methods(http.MethodDelete)

	nh := NewNotificationHandler(notificationSvc)
	n := api.PathPrefix("/notifications").Subrouter()
	n.HandleFunc("", nh.GetNotifications).Methods(http.MethodGet)
	n.HandleFunc("/{id:[0-9]+}/read", nh.MarkAsRead).Methods(http.MethodPost)

	return r
}
