package handler

import (
	"errors"
	"net/http"

	"wmhn-clinic-api/internal/delivery/http/middleware"
	"wmhn-clinic-api/internal/usecase"
	"wmhn-clinic-api/pkg/response"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Logout handles admin logout
// @Summary Logout admin
// @Description Revoke the presented access token for the rest of its lifetime
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), middleware.ActorFromContext(r.Context()), claims); err != nil {
		if errors.Is(err, usecase.ErrInvalidToken) {
			response.Unauthorized(w, "Invalid token")
			return
		}
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}
