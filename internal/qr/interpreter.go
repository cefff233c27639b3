package qr

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/globalpay/internal/models"
)

// ErrUnrecognized is returned when a scanned payload looks like a structured
// record but cannot be decoded. Payloads matching no known shape do not reach
// this error; they fall through to the placeholder format instead.
var ErrUnrecognized = errors.New("unrecognized payment code")

// Format recognizes one QR text encoding and turns it into a PaymentIntent.
type Format interface {
	Matches(raw string) bool
	Parse(raw string) (*models.PaymentIntent, error)
}

// Interpreter tries a fixed priority order of formats; the first match wins.
type Interpreter struct {
	formats []Format

	newID func() string
	now   func() time.Time
}

// NewInterpreter constructs the interpreter with the standard format chain:
// structured JSON, then UPI pay URIs, then the permissive demo placeholder.
func NewInterpreter() *Interpreter {
	it := &Interpreter{
		newID: uuid.NewString,
		now:   time.Now,
	}
	it.formats = []Format{
		jsonFormat{},
		upiFormat{it},
		placeholderFormat{it},
	}
	return it
}

// Interpret normalizes raw scanned text into a PaymentIntent.
//
// The placeholder format matches everything, so the only failure mode is a
// payload that looks structured but does not decode; that failure is terminal
// and deliberately does not cascade into the remaining formats.
func (it *Interpreter) Interpret(raw string) (*models.PaymentIntent, error) {
	for _, format := range it.formats {
		if !format.Matches(raw) {
			continue
		}
		intent, err := format.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognized, err)
		}
		return intent, nil
	}
	return nil, ErrUnrecognized
}
