package id

import "github.com/google/uuid"

// NewMemberID returns a fresh internal member identifier.
func NewMemberID() string {
	return uuid.NewString()
}

// NewTransactionID returns a fresh transaction identifier.
func NewTransactionID() string {
	return uuid.NewString()
}

// Short returns the first block of an identifier for display.
// "1b4e28ba-2fa1-11d2-883f-0016d3cca427" -> "1b4e28ba"
func Short(s string) string {
	if len(s) < 8 {
		return s
	}
	return s[:8]
}
