package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/7-central/admin-auth-service/internal/auth/dto"
	"github.com/7-central/admin-auth-service/internal/auth/service"
	autherror "github.com/7-central/admin-auth-service/internal/errors"
	"github.com/7-central/admin-auth-service/pkg/constant"
)

type AuthHandler struct {
	loginService *service.LoginService
	secureCookie bool
}

func NewAuthHandler(loginService *service.LoginService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		loginService: loginService,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
			"code":  "INVALID_INPUT",
		})
	}

	// Capture metadata
	input.IPAddress = clientIP(c)
	input.UserAgent = string(c.Request().Header.UserAgent())

	result, err := h.loginService.Login(c.Context(), input)
	if err != nil {
		return h.writeError(c, err)
	}

	h.setSessionCookie(c, result.SessionToken, result.ExpiresAt)

	return c.Status(fiber.StatusOK).JSON(result)
}

// Logout always responds with success, even without an active session; the
// token is consulted for audit attribution only.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.loginService.Logout(c.Context(), dto.LogoutInput{
		Token:     sessionToken(c),
		IPAddress: clientIP(c),
		UserAgent: string(c.Request().Header.UserAgent()),
	})

	h.clearSessionCookie(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) writeError(c *fiber.Ctx, err error) error {
	var authErr *autherror.Error
	if !errors.As(err, &authErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal error",
			"code":  "INTERNAL",
		})
	}

	body := fiber.Map{
		"error": authErr.Message,
		"code":  authErr.Code,
	}
	switch authErr.Kind {
	case autherror.KindRateLimited:
		retryAfter := int(authErr.RetryAfter.Round(time.Second).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		body["retryAfterSeconds"] = retryAfter
	case autherror.KindInvalidCredentials:
		if authErr.HasRemaining {
			body["remainingAttempts"] = authErr.RemainingAttempts
		}
	}

	return c.Status(authErr.HTTPStatus()).JSON(body)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.SessionCookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// sessionToken reads the session cookie, falling back to a bearer header
// for non-browser clients.
func sessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(constant.SessionCookieName); token != "" {
		return token
	}
	auth := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

func clientIP(c *fiber.Ctx) string {
	if ip := c.Get(constant.HeaderXForwardedFor); ip != "" {
		return ip
	}
	return c.IP()
}
