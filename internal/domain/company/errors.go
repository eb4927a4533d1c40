package company

import "errors"

var (
	// ErrCompanyNotFound is returned when a company is not found
	ErrCompanyNotFound = errors.New("company not found")

	// ErrRevenueDrift is returned when a revenue delta would push the
	// counter below zero, which means some write path bypassed it
	ErrRevenueDrift = errors.New("monthly revenue counter drift detected")
)
