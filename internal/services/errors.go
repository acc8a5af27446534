// internal/services/errors.go
package services

import "errors"

var (
	ErrStoreNotFound    = errors.New("store not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrEntryNotFound    = errors.New("profit entry not found")
	ErrTrackingNotFound = errors.New("tracking number not found")
)
