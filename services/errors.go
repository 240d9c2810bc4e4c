package services

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCartItemNotFound = errors.New("cart item not found")

	ErrEmailTaken  = errors.New("email already exists")
	ErrLastManager = errors.New("cannot delete the last manager")

	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidSize     = errors.New("size is not available for this product")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrCartConflict is returned when a cart mutation keeps losing to
	// concurrent updates after the bounded retry.
	ErrCartConflict = errors.New("cart was modified concurrently, please retry")

	ErrEmptyMessage    = errors.New("message is required")
	ErrChatUnavailable = errors.New("chat service is not available")
)
