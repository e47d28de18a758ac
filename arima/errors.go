package arima

import "errors"

// Errors returned by model operations.
var (
	ErrNonStationary   = errors.New("arima: model is not stationary")
	ErrNonInvertible   = errors.New("arima: model is not invertible")
	ErrMinimization    = errors.New("arima: spectrum minimization failed")
	ErrInvalidVariance = errors.New("arima: invalid innovation variance")
)
