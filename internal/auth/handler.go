package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Faheem2407/go-todo-app/internal/user"
	"github.com/Faheem2407/go-todo-app/pkg/utils"
)

type Handler struct {
	userService  user.UserService
	tokenService TokenService
}

func NewHandler(us user.UserService, ts TokenService) *Handler {
	return &Handler{
		userService:  us,
		tokenService: ts,
	}
}

// POST /api/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                 string `json:"name"`
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid body")
		return
	}

	u, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password, req.PasswordConfirmation)
	if err != nil {
		var fe utils.FieldErrors
		if errors.As(err, &fe) {
			utils.WriteFieldErrors(w, fe)
			return
		}
		slog.Error("register failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "could not register")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, user.ToUserDTO(u))
}

// POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid body")
		return
	}

	u, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, expiresAt, err := h.tokenService.Generate(r.Context(), u.ID)
	if err != nil {
		slog.Error("token generation failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "token error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user.ToUserDTO(u),
	})
}

// GET /api/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Token outlived the account.
			utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		slog.Error("me lookup failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "could not load user")
		return
	}

	utils.WriteJSON(w, http.StatusOK, user.ToUserDTO(u))
}

// POST /api/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	jti, ok := SessionIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.tokenService.Revoke(r.Context(), jti); err != nil {
		slog.Error("token revoke failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "could not log out")
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}
