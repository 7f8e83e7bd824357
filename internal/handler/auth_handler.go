package handler

import (
	"strings"

	"skill-quest/internal/domain"
	"skill-quest/internal/logger"
	"skill-quest/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler issues development access tokens. Production tokens come from the
// identity provider sharing the signing secret.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

type devTokenRequest struct {
	Email string `json:"email"`
}

// IssueDevToken godoc
// @Summary Issue an access token for a registered user (development only)
// @Tags dev
// @Accept json
// @Produce json
// @Param request body handler.devTokenRequest true "Email"
// @Success 200 {object} dto.TokenResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /dev/token [post]
func (h *AuthHandler) IssueDevToken(c *fiber.Ctx) error {
	var req devTokenRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("email")}
	}

	user, err := h.userService.GetUser(c.UserContext(), email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewUserNotFoundError(email)
	}

	token, err := h.authService.IssueAccessToken(email)
	if err != nil {
		return domain.NewInternalError("failed to issue token", err)
	}
	logger.Get().Info("Development token issued", zap.String("userID", user.ID))
	return c.JSON(token)
}
