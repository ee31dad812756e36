package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"shiftmarket-backend/internal/domain"
	"shiftmarket-backend/internal/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type notificationPage struct {
	Items []domain.Notification `json:"items"`
	Total int32                 `json:"total"`
}

func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerID(r.Context())

	page := int32(1)
	if p := optionalInt32Query(r, "page"); p != nil && *p > 0 {
		page = *p
	}
	pageSize := int32(20)
	if p := optionalInt32Query(r, "pageSize"); p != nil && *p > 0 {
		pageSize = *p
	}

	items, total, err := h.svc.GetNotifications(r.Context(), callerID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationPage{Items: items, Total: total})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.svc.MarkAsRead(r.Context(), callerID, int32(id)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
