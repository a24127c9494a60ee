package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-folio/folio"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/register.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, folio.NewError(folio.KindValidation, "invalid request body", err))
	}

	accountID, err := h.Accounts.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.startSession(c, accountID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "account created"})
}

// Login handles POST /api/login.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, folio.NewError(folio.KindValidation, "invalid request body", err))
	}

	accountID, err := h.Accounts.Verify(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.startSession(c, accountID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "logged in"})
}

// Logout handles POST /api/logout.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(sessionCookie); token != "" {
		if err := h.Sessions.Revoke(c.UserContext(), token); err != nil {
			h.logger().Errorf("session revoke failed: %v", err)
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"success": true, "message": "logged out"})
}

// CheckAuth handles GET /api/check-auth.
func (h *Handler) CheckAuth(c *fiber.Ctx) error {
	accountID, err := h.Sessions.Resolve(c.UserContext(), c.Cookies(sessionCookie))
	if err != nil {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	return c.JSON(fiber.Map{"authenticated": true, "userId": accountID})
}

func (h *Handler) startSession(c *fiber.Ctx, accountID int64) error {
	session, err := h.Sessions.Issue(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}
