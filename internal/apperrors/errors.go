package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientStock indicates a stock mutation would drive a quantity below
// zero for an item that does not allow back-orders.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user lacks the required permission.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation conflicts with the current state of the
// resource (e.g. refunding more than was sold, closing an already-closed shift).
var ErrConflict = errors.New("conflict with current resource state")

// ErrConfiguration indicates required configuration (e.g. chart-of-accounts
// codes) is missing. Accounting correctness cannot be approximated, so this is
// treated as a transactional failure, never a warning.
var ErrConfiguration = errors.New("configuration error")

// ErrInternal is a generic internal failure exposed when the underlying cause
// should not leak to callers.
var ErrInternal = errors.New("internal error")
