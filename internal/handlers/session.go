package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/globalpay/internal/config"
	"github.com/example/globalpay/internal/ledger"
	"github.com/example/globalpay/internal/utils"
)

// SessionHandler issues demo sessions. There is exactly one password-less
// demo user, so "login" just mints a token for it.
type SessionHandler struct {
	ledger *ledger.Ledger
	cfg    *config.Config
}

// NewSessionHandler constructs SessionHandler.
func NewSessionHandler(l *ledger.Ledger, cfg *config.Config) *SessionHandler {
	return &SessionHandler{ledger: l, cfg: cfg}
}

// Create ensures the demo profile exists and returns a bearer token for it.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	profile, err := h.ledger.EnsureProfile()
	if err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, profile.ID, h.cfg.TokenExpires)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token": token,
			"user":  profile,
		},
	})
}
