package httpapi

import (
	"net/http"

	"fashniz-be/internal/product"
	"fashniz-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	products, err := s.products.ListProducts(r.Context(), category)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if products == nil {
		products = []*product.Product{}
	}

	utils.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string              `json:"name"`
		Description *string             `json:"description"`
		Category    string              `json:"category"`
		Price       int64               `json:"price"`
		ImageURL    *string             `json:"image_url"`
		Sizes       []product.SizeStock `json:"sizes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.products.CreateProduct(r.Context(), product.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Sizes:       req.Sizes,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Price       *int64  `json:"price"`
		ImageURL    *string `json:"image_url"`
		Active      *bool   `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.products.UpdateProduct(r.Context(), product.UpdateProductParams{
		ProductID:   chi.URLParam(r, "id"),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.products.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
