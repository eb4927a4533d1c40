package order

// Status is the lifecycle state of an order. Pending is the only
// non-terminal state; confirmed and rejected are both terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is a known order status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusRejected
}

// CanTransitionTo reports whether the transition s -> target is allowed.
// Only pending orders may move, and only to a terminal state.
func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusPending {
		return false
	}
	return target == StatusConfirmed || target == StatusRejected
}

// ValidStatuses enumerates every accepted status value.
var ValidStatuses = map[Status]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusRejected:  true,
}
