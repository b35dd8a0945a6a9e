package http

import (
	"log/slog"
	"net/http"

	"github.com/ssroyels/Trendex/internal/service"
	"github.com/ssroyels/Trendex/pkg/httputil"
	"github.com/ssroyels/Trendex/pkg/middleware"
	"github.com/ssroyels/Trendex/pkg/validator"
)

// CheckoutHandler handles HTTP requests for pincode verification, address
// capture, and order placement.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// VerifyPincodeRequest is the JSON request body for pincode verification.
type VerifyPincodeRequest struct {
	Pincode string `json:"pincode" validate:"required,len=6,numeric"`
}

// VerifyPincode handles POST /api/v1/checkout/pincode
func (h *CheckoutHandler) VerifyPincode(w http.ResponseWriter, r *http.Request) {
	var req VerifyPincodeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.VerifyPincode(r.Context(), req.Pincode); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"serviceable": true}})
}

// SaveAddress handles POST /api/v1/checkout/address
func (h *CheckoutHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	var req service.AddressInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	address, err := h.service.SaveAddress(ctx, middleware.SessionIDFromContext(ctx), middleware.UserIDFromContext(ctx), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: address})
}

// GetAddress handles GET /api/v1/checkout/address
func (h *CheckoutHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	address, err := h.service.GetAddress(ctx, middleware.SessionIDFromContext(ctx), middleware.UserIDFromContext(ctx))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: address})
}

// PlaceOrder handles POST /api/v1/checkout/order
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req service.PlaceOrderInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	order, err := h.service.PlaceOrder(ctx, middleware.SessionIDFromContext(ctx), middleware.UserIDFromContext(ctx), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}
