package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnsupportedCurrency indicates a currency code outside the supported set.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// ErrBootstrapFetch indicates the supported-currency bootstrap failed or returned unusable data.
// Callers recover by keeping the built-in currency list.
var ErrBootstrapFetch = errors.New("bootstrap currency fetch failed")

// ErrPriceFetch indicates the price history retrieval for the live generation failed.
// Callers recover by rendering an empty series.
var ErrPriceFetch = errors.New("price history fetch failed")

// ErrRegionBound indicates a display region already has a live rendering surface.
var ErrRegionBound = errors.New("display region already bound to a live surface")

// ErrSurfaceDisposed indicates an operation against a surface that was already disposed,
// or against a region with no live surface.
var ErrSurfaceDisposed = errors.New("rendering surface disposed")

// ErrLoopStopped indicates the controller event loop is no longer accepting work.
var ErrLoopStopped = errors.New("event loop stopped")
