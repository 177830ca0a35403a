package handlers

import (
	"net/http"
	"time"

	"github.com/coder-dkr/doomswear/configs"
	"github.com/coder-dkr/doomswear/internal/checkout"
	"github.com/coder-dkr/doomswear/internal/middleware"
	"github.com/coder-dkr/doomswear/internal/store"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 7 * 24 * time.Hour

// Handler holds the storefront's injected dependencies. No package
// globals beyond config and logger.
type Handler struct {
	store    *store.Store
	checkout *checkout.Coordinator
}

func New(st *store.Store, co *checkout.Coordinator) *Handler {
	return &Handler{store: st, checkout: co}
}

func signToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.AppConfig.JWT.SECRET))
}

func userIDFromContext(r *http.Request) (uint, bool) {
	userID, ok := r.Context().Value(middleware.UserIDContextKey).(uint)
	return userID, ok
}
