package models

// PaymentIntent is the normalized payment request extracted from a scanned code.
//
// Field names follow the persisted JSON layout consumed by the mobile client.
type PaymentIntent struct {
	PaymentID      string  `json:"paymentId"`
	MerchantName   string  `json:"merchantName"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	UpiID          string  `json:"upiId,omitempty"`
	WalletProvider string  `json:"walletProvider,omitempty"`
	Reference      string  `json:"reference,omitempty"`
	Timestamp      int64   `json:"timestamp"`
}
