package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates a broken internal invariant, e.g. a debt graph whose
// creditor and debtor magnitudes do not balance. It signals a bug, not bad input.
var ErrInternal = errors.New("internal invariant violation")
