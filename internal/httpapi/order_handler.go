package httpapi

import (
	"net/http"

	"fashniz-be/internal/order"
	"fashniz-be/internal/user"
	"fashniz-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// handleUpsertOrder accepts a client-pushed order payload and stores it,
// filling defaults for anything missing. Used by clients that captured an
// order locally before the server write went through.
func (s *Server) handleUpsertOrder(w http.ResponseWriter, r *http.Request) {
	var params order.UpsertParams
	if err := decodeJSON(r, &params); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok && params.UserID == nil {
		params.UserID = &userID
	}

	o, err := s.orders.Upsert(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	email := utils.GetUserEmailFromContext(r.Context())
	isAdmin := utils.GetUserRoleFromContext(r.Context()) == string(user.RoleAdmin)

	// Unauthenticated lookups are allowed for the confirmation page: the
	// order number itself is the bearer token there.
	if email == "" && !isAdmin {
		o, err := s.orders.GetOrder(r.Context(), orderID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, o)
		return
	}

	o, err := s.orders.GetOrderForUser(r.Context(), orderID, email, isAdmin)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}

// handleReconcileOrder re-runs the order lookup with retries. The request
// body may carry the client's locally captured order payload; when present
// it is stored as a pending order before the retries, so a single call
// recovers an interrupted confirmation.
func (s *Server) handleReconcileOrder(w http.ResponseWriter, r *http.Request) {
	var pending *order.UpsertParams
	if r.ContentLength != 0 {
		var params order.UpsertParams
		if err := decodeJSON(r, &params); err != nil {
			utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		pending = &params
	}

	o, err := s.reconciler.Reconcile(r.Context(), chi.URLParam(r, "orderId"), pending)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}

func (s *Server) handleGetOrdersByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	requester := utils.GetUserEmailFromContext(r.Context())
	isAdmin := utils.GetUserRoleFromContext(r.Context()) == string(user.RoleAdmin)
	if !isAdmin && requester != email {
		respondError(w, r, order.ErrUnauthorized)
		return
	}

	orders, err := s.orders.GetOrdersByEmail(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}

	utils.WriteJSON(w, http.StatusOK, orders)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.ListOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}

	utils.WriteJSON(w, http.StatusOK, orders)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := s.orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), order.Status(req.Status))
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"order_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.OrderID == "" {
		respondError(w, r, order.ErrMissingOrderID)
		return
	}

	if err := s.orders.SendConfirmation(r.Context(), req.OrderID); err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
