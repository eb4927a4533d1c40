package catalog

import "errors"

var (
	// ErrServiceNotFound is returned when a catalog service is not found
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive is returned when ordering a deactivated service
	ErrServiceInactive = errors.New("service is not available for ordering")

	// ErrInvalidCategory is returned for an unknown service category
	ErrInvalidCategory = errors.New("invalid service category")
)
