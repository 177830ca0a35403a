package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/coder-dkr/doomswear/configs"
	"github.com/coder-dkr/doomswear/internal/httputil"
	"github.com/coder-dkr/doomswear/internal/logger"
	"github.com/coder-dkr/doomswear/internal/models"
	"github.com/coder-dkr/doomswear/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "Name is required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Please provide a valid email")
		return
	}
	if len(req.Password) < 6 {
		httputil.WriteMessage(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	if _, err := h.store.GetUserByEmail(r.Context(), req.Email); err == nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "User already exists with this email")
		return
	} else if !errors.Is(err, store.ErrUserNotFound) {
		logger.Log.Error("signup lookup failed", zap.Error(err))
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", zap.Error(err))
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	user := models.User{Name: req.Name, Email: req.Email, Password: string(hash)}
	opening := decimal.NewFromFloat(configs.AppConfig.Wallet.OpeningBalance)
	if err := h.store.CreateUser(r.Context(), &user, opening); err != nil {
		logger.Log.Error("failed to create user", zap.Error(err))
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	signed, err := signToken(user.ID)
	if err != nil {
		logger.Log.Error("failed to sign jwt", zap.Error(err))
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, AuthResponse{Token: signed, User: &user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	signed, err := signToken(user.ID)
	if err != nil {
		logger.Log.Error("failed to sign jwt", zap.Error(err))
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, AuthResponse{Token: signed, User: user})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
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
	user.Transactions = entries

	httputil.WriteJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}
