// Package httpapi exposes the folio HTTP surface on a fiber app.
package httpapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-folio/folio"
)

const sessionCookie = "folio_session"

// Handler wires the folio services to HTTP routes.
type Handler struct {
	Accounts   *folio.Accounts
	Portfolios *folio.Portfolios
	Sessions   *folio.Sessions
	Photos     folio.PhotoStore
	Logger     folio.Logger

	StaticDir  string
	UploadsDir string
}

// RegisterRoutes registers all routes on the app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	// The editor page is reachable only through the gated /portfolio
	// route, so the page files are registered one by one instead of
	// exposing the whole static directory.
	if h.StaticDir != "" {
		app.Get("/", h.staticPage("index.html"))
		app.Get("/login", h.staticPage("login.html"))
		app.Get("/register", h.staticPage("register.html"))
		app.Get("/portfolio", h.portfolioPage())
		app.Get("/style.css", h.staticPage("style.css"))
	}
	if h.UploadsDir != "" {
		app.Static("/uploads", h.UploadsDir)
	}

	api := app.Group("/api")
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/logout", h.Logout)
	api.Get("/check-auth", h.CheckAuth)

	authed := api.Group("", h.RequireSession)
	authed.Get("/portfolio", h.GetPortfolio)
	authed.Post("/portfolio", h.SavePortfolio)
	authed.Post("/portfolio/save", h.SavePortfolio)
	authed.Post("/portfolio/generate-pdf", h.GeneratePDF)
}

// RequireSession resolves the session cookie and stashes the account ID,
// or fails with 401.
func (h *Handler) RequireSession(c *fiber.Ctx) error {
	accountID, err := h.Sessions.Resolve(c.UserContext(), c.Cookies(sessionCookie))
	if err != nil {
		return writeError(c, err)
	}
	c.Locals(accountIDKey, accountID)
	return c.Next()
}

func (h *Handler) staticPage(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendFile(h.StaticDir + "/" + name)
	}
}

// portfolioPage serves the editor page only to a logged-in session.
func (h *Handler) portfolioPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := h.Sessions.Resolve(c.UserContext(), c.Cookies(sessionCookie)); err != nil {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.SendFile(h.StaticDir + "/portfolio.html")
	}
}

const accountIDKey = "accountID"

func accountID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(accountIDKey).(int64)
	return id
}

func statusForKind(kind folio.ErrorKind) int {
	switch kind {
	case folio.KindValidation, folio.KindDuplicateEmail, folio.KindFileType, folio.KindFileTooLarge:
		return http.StatusBadRequest
	case folio.KindInvalidCredentials, folio.KindUnauthorized:
		return http.StatusUnauthorized
	case folio.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *fiber.Ctx, err error) error {
	ge := folio.AsGoError(err)
	return c.Status(statusForKind(folio.KindFromError(err))).JSON(fiber.Map{
		"success": false,
		"error":   ge.Message,
		"code":    ge.TextCode,
	})
}

func (h *Handler) logger() folio.Logger {
	if h == nil || h.Logger == nil {
		return folio.NopLogger{}
	}
	return h.Logger
}
