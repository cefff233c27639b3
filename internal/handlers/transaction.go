package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/globalpay/internal/ledger"
	"github.com/example/globalpay/internal/models"
	"github.com/example/globalpay/pkg/logger"
)

// TransactionHandler manages transaction endpoints.
type TransactionHandler struct {
	ledger *ledger.Ledger
	log    *logger.Logger
}

// NewTransactionHandler constructs TransactionHandler.
func NewTransactionHandler(l *ledger.Ledger, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{ledger: l, log: log}
}

type createTransactionRequest struct {
	PaymentData models.PaymentIntent `json:"paymentData"`
}

type updateStatusRequest struct {
	Status models.TransactionStatus `json:"status"`
}

// Create records a new pending transaction for an interpreted intent.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	txn, err := h.ledger.CreateTransaction(req.PaymentData)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": txn})
}

// List returns transaction history, most recent first.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	txns := h.ledger.ListAll()
	if txns == nil {
		txns = []models.Transaction{}
	}
	return c.JSON(fiber.Map{"success": true, "data": txns})
}

// Get returns one transaction by id.
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	txn := h.ledger.GetByID(c.Params("id"))
	if txn == nil {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": txn})
}

// Confirm moves a transaction through verification and simulated settlement,
// returning the completed record.
func (h *TransactionHandler) Confirm(c *fiber.Ctx) error {
	id := c.Params("id")

	txn := h.ledger.GetByID(id)
	if txn == nil {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	if txn.Status.Terminal() {
		return fiber.NewError(fiber.StatusConflict, "transaction already settled")
	}

	verifying, err := h.ledger.UpdateStatus(id, models.StatusVerifying)
	if err != nil {
		return err
	}

	settled, err := h.ledger.Settle(c.UserContext(), *verifying)
	if err != nil {
		h.log.Errorf("settlement of %s failed: %v", id, err)
		if _, failErr := h.ledger.Fail(id, "Payment processing error"); failErr != nil {
			h.log.Errorf("recording failure of %s: %v", id, failErr)
		}
		return fiber.NewError(fiber.StatusBadGateway, "payment processing error")
	}

	return c.JSON(fiber.Map{"success": true, "data": settled})
}

// UpdateStatus applies a caller-controlled transient annotation.
func (h *TransactionHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !req.Status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	txn, err := h.ledger.UpdateStatus(c.Params("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrTransactionNotFound):
			return fiber.NewError(fiber.StatusNotFound, "transaction not found")
		case errors.Is(err, ledger.ErrStatusNotAllowed):
			return fiber.NewError(fiber.StatusConflict, "status change not allowed")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": txn})
}
