package qr

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/example/globalpay/internal/models"
)

const (
	upiScheme = "upi://pay?"

	// Defaults applied when a recognized payload omits a field, and the
	// canned placeholder intent for payloads matching no known shape.
	defaultCurrency     = "INR"
	unknownMerchant     = "Unknown Merchant"
	placeholderMerchant = "Demo Merchant"
	placeholderAmount   = 100.00
	placeholderUpiID    = "merchant@upi"
)

// jsonFormat handles self-describing payloads: text that begins and ends
// with JSON object delimiters decodes directly into a PaymentIntent, fields
// taken verbatim with no defaulting.
type jsonFormat struct{}

func (jsonFormat) Matches(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")
}

func (jsonFormat) Parse(raw string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// upiFormat handles upi://pay?pa=...&pn=...&am=... routing URIs. The scheme
// carries no currency field, so the currency is fixed to the UPI default.
type upiFormat struct {
	it *Interpreter
}

func (upiFormat) Matches(raw string) bool {
	return strings.HasPrefix(raw, upiScheme)
}

func (f upiFormat) Parse(raw string) (*models.PaymentIntent, error) {
	// ParseQuery returns whatever pairs it could decode alongside the
	// error. A mangled pair never fails the scan; the defaults cover
	// whatever was lost.
	params, _ := url.ParseQuery(strings.TrimPrefix(raw, upiScheme))

	merchant := params.Get("pn")
	if merchant == "" {
		merchant = unknownMerchant
	}

	amount, err := strconv.ParseFloat(params.Get("am"), 64)
	if err != nil || amount < 0 {
		amount = 0
	}

	return &models.PaymentIntent{
		PaymentID:    f.it.newID(),
		MerchantName: merchant,
		Amount:       amount,
		Currency:     defaultCurrency,
		UpiID:        params.Get("pa"),
		Timestamp:    f.it.now().UnixMilli(),
	}, nil
}

// placeholderFormat matches anything. Unrecognized payloads produce a canned
// demo intent instead of an error; the scan surface stays usable with any
// code the camera picks up.
type placeholderFormat struct {
	it *Interpreter
}

func (placeholderFormat) Matches(string) bool {
	return true
}

func (f placeholderFormat) Parse(string) (*models.PaymentIntent, error) {
	return &models.PaymentIntent{
		PaymentID:    f.it.newID(),
		MerchantName: placeholderMerchant,
		Amount:       placeholderAmount,
		Currency:     defaultCurrency,
		UpiID:        placeholderUpiID,
		Timestamp:    f.it.now().UnixMilli(),
	}, nil
}
