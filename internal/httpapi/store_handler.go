package httpapi

import (
	"net/http"
	"time"

	"fashniz-be/internal/complaint"
	"fashniz-be/internal/discount"
	"fashniz-be/internal/metrics"
	"fashniz-be/internal/shipping"
	"fashniz-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListShippingMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := s.shippingRepo.List(r.Context(), true)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if methods == nil {
		methods = []*shipping.Method{}
	}

	utils.WriteJSON(w, http.StatusOK, methods)
}

func (s *Server) handleUpsertShippingMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code          string `json:"code"`
		Label         string `json:"label"`
		Cost          int64  `json:"cost"`
		EstimatedDays int    `json:"estimated_days"`
		Active        bool   `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		utils.WriteJSONError(w, "code is required", http.StatusBadRequest)
		return
	}

	method, err := s.shippingRepo.Upsert(r.Context(), shipping.UpsertMethodParams{
		Code:          req.Code,
		Label:         req.Label,
		Cost:          req.Cost,
		EstimatedDays: req.EstimatedDays,
		Active:        req.Active,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, method)
}

func (s *Server) handleValidateDiscount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code     string `json:"code"`
		Subtotal int64  `json:"subtotal"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	applied, err := s.discounts.Validate(r.Context(), req.Code, req.Subtotal, time.Now())
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, applied)
}

func (s *Server) handleListDiscounts(w http.ResponseWriter, r *http.Request) {
	discounts, err := s.discounts.ListDiscounts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if discounts == nil {
		discounts = []*discount.Discount{}
	}

	utils.WriteJSON(w, http.StatusOK, discounts)
}

func (s *Server) handleCreateDiscount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string    `json:"code"`
		Type        string    `json:"discount_type"`
		Value       int64     `json:"value"`
		MinPurchase int64     `json:"min_purchase"`
		StartsAt    time.Time `json:"starts_at"`
		EndsAt      time.Time `json:"ends_at"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	d, err := s.discounts.CreateDiscount(r.Context(), discount.CreateDiscountParams{
		Code:        req.Code,
		Type:        discount.DiscountType(req.Type),
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, d)
}

func (s *Server) handleDeactivateDiscount(w http.ResponseWriter, r *http.Request) {
	if err := s.discounts.DeactivateDiscount(r.Context(), chi.URLParam(r, "code")); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string  `json:"email"`
		OrderID  *string `json:"order_id"`
		Category string  `json:"category"`
		Message  string  `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	params := complaint.CreateComplaintParams{
		Email:    req.Email,
		OrderID:  req.OrderID,
		Category: req.Category,
		Message:  req.Message,
	}
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		params.UserID = &userID
	}

	c, err := s.complaints.Create(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, c)
}

func (s *Server) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := s.complaints.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if complaints == nil {
		complaints = []*complaint.Complaint{}
	}

	utils.WriteJSON(w, http.StatusOK, complaints)
}

func (s *Server) handleUpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.complaints.UpdateStatus(r.Context(), id, complaint.Status(req.Status)); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, metrics.Snapshot())
}
