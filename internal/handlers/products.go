package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/coder-dkr/doomswear/internal/httputil"
	"github.com/coder-dkr/doomswear/internal/logger"
	"github.com/coder-dkr/doomswear/internal/store"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		logger.Log.Error("failed to fetch products", zap.Error(err))
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.store.GetProduct(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			httputil.WriteMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		logger.Log.Error("failed to fetch product", zap.Error(err))
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, product)
}
