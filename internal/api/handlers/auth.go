package handlers

import (
	"errors"
	"net/http"

	"github.com/dagmara-szproch/animal-farm/internal/api/httpx"
	"github.com/dagmara-szproch/animal-farm/internal/api/validate"
	"github.com/dagmara-szproch/animal-farm/internal/services"
)

type AuthHandler struct {
	Users *services.UserService
}

func NewAuthHandler(us *services.UserService) *AuthHandler {
	return &AuthHandler{Users: us}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}

	var errs validate.Errs
	for field, value := range map[string]string{
		"username": req.Username,
		"email":    req.Email,
		"password": req.Password,
	} {
		if ef := validate.Required(field, value); ef != nil {
			errs = append(errs, *ef)
		}
	}
	if len(errs) == 0 {
		if ef := validate.MinLen("password", req.Password, 8); ef != nil {
			errs = append(errs, *ef)
		}
	}
	if len(errs) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", errs.Error(), errs)
		return
	}

	u, err := h.Users.Register(req.Username, req.Email, req.FullName, req.Password)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "registration_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	User   any                `json:"user"`
	Tokens services.TokenPair `json:"tokens"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "email and password required", nil)
		return
	}
	u, pair, err := h.Users.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrAccountDeleted) {
			httpx.WriteError(w, http.StatusForbidden, "account_deleted", err.Error(), nil)
			return
		}
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loginResp{User: u, Tokens: pair})
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := httpx.DecodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "refresh_token required", nil)
		return
	}
	pair, err := h.Users.Refresh(req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid refresh token", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}
