package domain

import "errors"

var (
	ErrDiscNotFound      = errors.New("disc not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
