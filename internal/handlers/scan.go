package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/globalpay/internal/qr"
)

// ScanHandler normalizes raw scanned QR text into payment intents.
type ScanHandler struct {
	interpreter *qr.Interpreter
}

// NewScanHandler constructs ScanHandler.
func NewScanHandler(interpreter *qr.Interpreter) *ScanHandler {
	return &ScanHandler{interpreter: interpreter}
}

type scanRequest struct {
	QRData string `json:"qrData"`
}

// Scan interprets the scanned text and returns the normalized intent.
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	intent, err := h.interpreter.Interpret(req.QRData)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unrecognized QR code")
	}

	return c.JSON(fiber.Map{"success": true, "data": intent})
}
