package entitlement

// Status is the lifecycle state of a service entitlement.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusRejected  Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is a known entitlement status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusSuspended, StatusRejected:
		return true
	}
	return false
}

// Billable reports whether the entitlement contributes to company
// monthly revenue in this status.
func (s Status) Billable() bool {
	return s == StatusActive
}

// CanTransitionTo reports whether the transition s -> target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusPending:   {StatusActive, StatusRejected},
		StatusActive:    {StatusSuspended},
		StatusSuspended: {StatusActive},
		StatusRejected:  {},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidStatuses enumerates every accepted status value.
var ValidStatuses = map[Status]bool{
	StatusPending:   true,
	StatusActive:    true,
	StatusSuspended: true,
	StatusRejected:  true,
}
