package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/globalpay/internal/ledger"
	"github.com/example/globalpay/internal/middleware"
)

// ProfileHandler manages the demo user profile endpoint.
type ProfileHandler struct {
	ledger *ledger.Ledger
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(l *ledger.Ledger) *ProfileHandler {
	return &ProfileHandler{ledger: l}
}

// GetProfile returns the authenticated user's profile, initializing the
// default record on first access.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	if _, ok := middleware.GetCurrentUserID(c); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := h.ledger.EnsureProfile()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": profile})
}
