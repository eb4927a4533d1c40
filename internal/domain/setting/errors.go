package setting

import "errors"

var (
	// ErrSettingNotFound is returned when a setting is not found
	ErrSettingNotFound = errors.New("setting not found")

	// ErrInvalidValueType is returned when a setting value is accessed
	// or written with the wrong type
	ErrInvalidValueType = errors.New("invalid setting value type")

	// ErrPolicyUnavailable is returned when the validation policy gate
	// cannot be read. Callers must fail safe: treat validation as
	// required, never auto-activate on an unreadable policy.
	ErrPolicyUnavailable = errors.New("validation policy unavailable")
)
