package http

import (
	"log/slog"
	"net/http"

	"github.com/ssroyels/Trendex/internal/service"
	"github.com/ssroyels/Trendex/pkg/httputil"
	"github.com/ssroyels/Trendex/pkg/middleware"
	"github.com/ssroyels/Trendex/pkg/validator"
)

// OrderHandler handles HTTP requests for order tracking and confirmation.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger,
	}
}

// ConfirmOrderRequest is the JSON request body for confirming a pending
// order with a subset of its items.
type ConfirmOrderRequest struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1"`
}

// Track handles GET /api/v1/order
func (h *OrderHandler) Track(w http.ResponseWriter, r *http.Request) {
	tracking, err := h.service.Track(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: tracking})
}

// Advance handles POST /api/v1/order/advance
func (h *OrderHandler) Advance(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Advance(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": status}})
}

// Confirm handles POST /api/v1/order/confirm
func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	tracking, err := h.service.Confirm(r.Context(), middleware.SessionIDFromContext(r.Context()), req.ItemIDs)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: tracking})
}
