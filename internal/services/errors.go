package services

import "errors"

// ErrInvalidRowLimit is returned for a per-request row limit outside 1..10000
var ErrInvalidRowLimit = errors.New("invalid row limit")
