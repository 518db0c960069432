package errors

import "errors"

var (
	ErrAuthRequired   = errors.New("login is required for this action")
	ErrSessionExpired = errors.New("session has expired")
	ErrAlreadyAuthed  = errors.New("already logged in")
	ErrRemoteSync     = errors.New("failed syncing with the store api")
	ErrInvalidPayload = errors.New("store api returned an invalid payload")
	ErrQuantityTooLow = errors.New("quantity must be at least 1")
	ErrEmptyCart      = errors.New("cart is empty")
)
