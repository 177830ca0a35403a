package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coder-dkr/doomswear/internal/checkout"
	"github.com/coder-dkr/doomswear/internal/httputil"
	"github.com/coder-dkr/doomswear/internal/logger"
	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/coder-dkr/doomswear/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PlaceOrderRequest struct {
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
	Product      struct {
		ID       uint   `json:"_id"`
		Color    string `json:"color"`
		Size     string `json:"size"`
		Quantity int    `json:"quantity"`
		Image    string `json:"image"`
	} `json:"product"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	// Accepted for compatibility with older clients; the server
	// generates the authoritative order number.
	OrderNumber string `json:"orderNumber"`
}

type placedProduct struct {
	models.ProductSnapshot
	Inventory int `json:"inventory"`
}

type placedOrder struct {
	models.Order
	Product     placedProduct   `json:"product"`
	UserBalance decimal.Decimal `json:"userBalance"`
}

type placeOrderResponse struct {
	Message string `json:"message"`
	Order   any    `json:"order"`
	Status  string `json:"status"`
}

type insufficientStockResponse struct {
	Message   string `json:"message"`
	Available int    `json:"available"`
}

type insufficientFundsResponse struct {
	Message        string          `json:"message"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	RequiredAmount decimal.Decimal `json:"requiredAmount"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg, ok := validatePlaceOrder(&req); !ok {
		httputil.WriteMessage(w, http.StatusBadRequest, msg)
		return
	}

	placement, err := h.checkout.Place(r.Context(), checkout.PlaceOrderInput{
		UserID:       userID,
		ProductID:    req.Product.ID,
		Quantity:     req.Product.Quantity,
		Color:        req.Product.Color,
		Size:         req.Product.Size,
		Image:        req.Product.Image,
		CustomerInfo: req.CustomerInfo,
		TotalAmount:  req.TotalAmount,
		Status:       req.Status,
	})
	if err != nil {
		writePlacementError(w, err)
		return
	}

	order := placement.Order
	if order.Status != models.StatusSuccess {
		httputil.WriteJSON(w, http.StatusOK, placeOrderResponse{
			Message: fmt.Sprintf("Status %s. Order couldn't be placed", order.Status),
			Status:  order.Status,
			Order:   order,
		})
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, placeOrderResponse{
		Message: "Order created successfully",
		Order: placedOrder{
			Order:       order,
			Product:     placedProduct{ProductSnapshot: order.Product, Inventory: placement.Inventory},
			UserBalance: placement.Balance,
		},
		Status: order.Status,
	})
}

func validatePlaceOrder(req *PlaceOrderRequest) (string, bool) {
	switch {
	case req.CustomerInfo.FullName == "" || req.CustomerInfo.Email == "":
		return "Customer information is required", false
	case req.Product.ID == 0:
		return "Product information is required", false
	case req.Product.Quantity < 1:
		return "Quantity must be at least 1", false
	case !req.TotalAmount.IsPositive():
		return "Total amount must be a positive number", false
	}
	return "", true
}

func writePlacementError(w http.ResponseWriter, err error) {
	var stockErr *store.InsufficientStockError
	var fundsErr *store.InsufficientFundsError

	switch {
	case errors.Is(err, store.ErrProductNotFound):
		httputil.WriteMessage(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, store.ErrUserNotFound):
		httputil.WriteMessage(w, http.StatusNotFound, "User not found")
	case errors.As(err, &stockErr):
		httputil.WriteJSON(w, http.StatusBadRequest, insufficientStockResponse{
			Message:   "Insufficient inventory",
			Available: stockErr.Available,
		})
	case errors.As(err, &fundsErr):
		httputil.WriteJSON(w, http.StatusBadRequest, insufficientFundsResponse{
			Message:        "Insufficient wallet balance",
			CurrentBalance: fundsErr.Balance,
			RequiredAmount: fundsErr.Required,
		})
	case store.IsTransient(err):
		httputil.WriteMessage(w, http.StatusConflict, "Checkout conflict, please retry")
	default:
		logger.Log.Error("order placement failed", zap.Error(err))
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error during order processing")
	}
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.checkout.GetOrder(r.Context(), uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrOrderNotFound):
			httputil.WriteMessage(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, checkout.ErrForbidden):
			httputil.WriteMessage(w, http.StatusForbidden, "Not authorized to access this order")
		default:
			logger.Log.Error("failed to fetch order", zap.Error(err))
			httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]*models.Order{"order": order})
}
