package setting

import "context"

// PolicyProvider exposes the validation policy gate to the self-service
// entitlement path and the pending-services review surface. The order
// confirmation path deliberately does not consult it: a confirmed order
// has already been reviewed, so provisioning always activates.
type PolicyProvider interface {
	// RequireValidation reports whether self-service-added entitlements
	// must start pending. Implementations return ErrPolicyUnavailable
	// (possibly wrapped) when the gate cannot be read; callers treat
	// that as validation required.
	RequireValidation(ctx context.Context) (bool, error)
}
