package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrUnknownPlan         = errors.New("unknown membership plan")
	ErrOrderCreationFailed = errors.New("order creation failed")
	ErrInvalidComparison   = errors.New("invalid comparison request")
	ErrInvalidProfile      = errors.New("invalid profile")
)
