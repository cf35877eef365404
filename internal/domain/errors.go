package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrEmptyReference = errors.New("reference number cannot be empty")
	ErrNegativeFee    = errors.New("fee amount cannot be negative")

	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNotActive    = errors.New("account is not active")
	ErrInsufficientBalance = errors.New("account balance is not enough")

	// Country errors
	ErrCountryNotFound  = errors.New("country not found")
	ErrCountryNotActive = errors.New("country is not active")
	ErrEmptyCountryName = errors.New("country name cannot be empty")
	ErrEmptyIsoCode     = errors.New("iso code cannot be empty")

	// Cache errors
	ErrInvalidCacheTier = errors.New("invalid cache type")
)
