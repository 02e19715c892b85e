package model

import (
	"errors"
	"fmt"
)

// Error kinds returned by the ledger. Callers compare with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidAmount also matches ErrInvalidArgument.
	ErrInvalidAmount       = fmt.Errorf("%w: amount must be greater than zero", ErrInvalidArgument)
	ErrMemberNotFound      = errors.New("member not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrDuplicateMember     = errors.New("member already exists")
	ErrDuplicateAccount    = errors.New("account already exists")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
