package httpapi

import (
	"net/http"

	"fashniz-be/internal/cart"
	"fashniz-be/internal/utils"
	"fashniz-be/internal/wishlist"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	lines, err := s.carts.GetCart(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if lines == nil {
		lines = []*cart.CartLine{}
	}

	utils.WriteJSON(w, http.StatusOK, lines)
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Quantity  int    `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	line, err := s.carts.AddToCart(r.Context(), cart.AddToCartParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, line)
}

func (s *Server) handleUpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Quantity  int    `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := s.carts.UpdateQuantity(r.Context(), cart.UpdateQuantityParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := s.carts.RemoveFromCart(r.Context(), cart.RemoveFromCartParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Size:      req.Size,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	items, err := s.wishlists.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		respondError(w, r, wishlist.ErrMissingProduct)
		return
	}

	item, err := s.wishlists.Add(r.Context(), userID, req.ProductID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, item)
}

func (s *Server) handleRemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	err := s.wishlists.Remove(r.Context(), userID, chi.URLParam(r, "productId"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
