package httpapi

import (
	"net/http"

	"fashniz-be/internal/checkout"
	"fashniz-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	session, err := s.checkouts.CreateSession(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, session)
}

func (s *Server) handleGetCheckoutSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.checkouts.GetSession(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, session)
}

func (s *Server) handleSubmitAddress(w http.ResponseWriter, r *http.Request) {
	var params checkout.SubmitAddressParams
	if err := decodeJSON(r, &params); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := s.checkouts.SubmitAddress(r.Context(), chi.URLParam(r, "sessionId"), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, session)
}

func (s *Server) handleSelectDelivery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := s.checkouts.SelectDelivery(r.Context(), chi.URLParam(r, "sessionId"), req.Method)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, session)
}

func (s *Server) handleSubmitPayment(w http.ResponseWriter, r *http.Request) {
	var params checkout.SubmitPaymentParams
	if err := decodeJSON(r, &params); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := s.checkouts.SubmitPayment(r.Context(), chi.URLParam(r, "sessionId"), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, session)
}

func (s *Server) handleApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := s.checkouts.ApplyCoupon(r.Context(), chi.URLParam(r, "sessionId"), req.Code)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, session)
}

func (s *Server) handleRemoveCoupon(w http.ResponseWriter, r *http.Request) {
	session, err := s.checkouts.RemoveCoupon(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, session)
}

func (s *Server) handleGoBack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Step string `json:"step"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := s.checkouts.GoBack(r.Context(), chi.URLParam(r, "sessionId"), checkout.Step(req.Step))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, session)
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.checkouts.PlaceOrder(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, o)
}
