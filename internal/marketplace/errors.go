package marketplace

import (
	"errors"
)

var (
	ErrUnauthorized              = errors.New("unauthorized")
	ErrSaleInactive              = errors.New("sale inactive")
	ErrInvalidAmount             = errors.New("invalid amount")
	ErrInvalidPrice              = errors.New("invalid price")
	ErrIncorrectPayment          = errors.New("incorrect payment")
	ErrInsufficientReserve       = errors.New("insufficient reserve")
	ErrInsufficientBalance       = errors.New("insufficient balance")
	ErrInsufficientAuthorization = errors.New("insufficient authorization")
	ErrListingNotFound           = errors.New("listing not found")
	ErrListingInactive           = errors.New("listing inactive")
)
