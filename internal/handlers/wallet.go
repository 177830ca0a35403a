package handlers

import (
	"errors"
	"net/http"

	"github.com/coder-dkr/doomswear/internal/httputil"
	"github.com/coder-dkr/doomswear/internal/logger"
	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/coder-dkr/doomswear/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WalletResponse struct {
	Balance      decimal.Decimal      `json:"balance"`
	Transactions []models.LedgerEntry `json:"transactions"`
}

// Wallet returns the caller's balance and ledger statement in
// insertion order.
func (h *Handler) Wallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			httputil.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		logger.Log.Error("failed to fetch user", zap.Error(err))
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	entries, err := h.store.Statement(r.Context(), userID)
	if err != nil {
		logger.Log.Error("failed to fetch ledger", zap.Error(err))
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, WalletResponse{
		Balance:      user.Wallet,
		Transactions: entries,
	})
}
