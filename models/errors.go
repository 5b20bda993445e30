package models

import "github.com/pkg/errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNothingQueued     = errors.New("nothing queued")
)

// ErrNoSession means the request carried no readable session token.
var ErrNoSession = errors.New("no session")
