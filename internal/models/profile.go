package models

// UserProfile is the singleton local account record.
//
// Balance is a static demo figure; it is never adjusted from transaction
// activity.
type UserProfile struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	UpiID   string  `json:"upiId"`
	Balance float64 `json:"balance"`
}
