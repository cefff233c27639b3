package models

// TransactionStatus enumerates the lifecycle of a payment attempt.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusVerifying  TransactionStatus = "verifying"
	StatusProcessing TransactionStatus = "processing"
	StatusCompleted  TransactionStatus = "completed"
	StatusFailed     TransactionStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerifying, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Transient reports whether s is a caller-set annotation between creation and
// settlement.
func (s TransactionStatus) Transient() bool {
	return s == StatusVerifying || s == StatusProcessing
}

// Transaction tracks one payment attempt's state over time.
//
// CompletedAt is set only when the transaction reaches StatusCompleted;
// FailureReason only when it reaches StatusFailed. Timestamps are
// milliseconds since epoch.
type Transaction struct {
	ID            string            `json:"id"`
	PaymentData   PaymentIntent     `json:"paymentData"`
	Status        TransactionStatus `json:"status"`
	FromAccount   string            `json:"fromAccount"`
	ToAccount     string            `json:"toAccount"`
	CreatedAt     int64             `json:"createdAt"`
	CompletedAt   *int64            `json:"completedAt,omitempty"`
	FailureReason string            `json:"failureReason,omitempty"`
}
