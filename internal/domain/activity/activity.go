// Package activity holds the append-only audit log. Records are created
// as side effects of state-changing operations and never updated or
// deleted.
package activity

import (
	"fmt"
	"time"

	"github.com/cloudesk-io/cloudesk/internal/shared/biztime"
	"github.com/cloudesk-io/cloudesk/internal/shared/id"
)

// Type classifies an audit event.
type Type string

const (
	TypeOrderCreated     Type = "order_created"
	TypeOrderRejected    Type = "order_rejected"
	TypeServiceActivated Type = "service_activated"
	TypeServiceRejected  Type = "service_rejected"
	TypeServiceDeleted   Type = "service_deleted"
	TypeServiceSuspended Type = "service_suspended"
	TypeServiceResumed   Type = "service_resumed"
	TypeUserAdded        Type = "user_added"
	TypeUserRemoved      Type = "user_removed"
	TypePaymentReceived  Type = "payment_received"
)

func (t Type) String() string {
	return string(t)
}

// IsValid reports whether t is a known activity type.
func (t Type) IsValid() bool {
	switch t {
	case TypeOrderCreated, TypeOrderRejected, TypeServiceActivated,
		TypeServiceRejected, TypeServiceDeleted, TypeServiceSuspended,
		TypeServiceResumed, TypeUserAdded, TypeUserRemoved,
		TypePaymentReceived:
		return true
	}
	return false
}

// Activity is one immutable audit log entry.
type Activity struct {
	id          uint
	sid         string
	typ         Type
	description string
	companyID   uint
	userID      uint
	userEmail   string
	metadata    map[string]any
	createdAt   time.Time
}

// NewActivity creates an audit entry attributed to the acting user.
func NewActivity(typ Type, description string, companyID, userID uint, userEmail string, metadata map[string]any) (*Activity, error) {
	if !typ.IsValid() {
		return nil, fmt.Errorf("invalid activity type: %s", typ)
	}
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}

	sid, err := id.NewActivityID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &Activity{
		sid:         sid,
		typ:         typ,
		description: description,
		companyID:   companyID,
		userID:      userID,
		userEmail:   userEmail,
		metadata:    metadata,
		createdAt:   biztime.NowUTC(),
	}, nil
}

// ReconstructActivity reconstructs an audit entry from persistence.
func ReconstructActivity(
	dbID uint,
	sid string,
	typ Type,
	description string,
	companyID, userID uint,
	userEmail string,
	metadata map[string]any,
	createdAt time.Time,
) (*Activity, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("activity ID cannot be zero")
	}
	if !typ.IsValid() {
		return nil, fmt.Errorf("invalid activity type: %s", typ)
	}
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &Activity{
		id:          dbID,
		sid:         sid,
		typ:         typ,
		description: description,
		companyID:   companyID,
		userID:      userID,
		userEmail:   userEmail,
		metadata:    metadata,
		createdAt:   createdAt,
	}, nil
}

func (a *Activity) ID() uint             { return a.id }
func (a *Activity) SID() string          { return a.sid }
func (a *Activity) Type() Type           { return a.typ }
func (a *Activity) Description() string  { return a.description }
func (a *Activity) CompanyID() uint      { return a.companyID }
func (a *Activity) UserID() uint         { return a.userID }
func (a *Activity) UserEmail() string    { return a.userEmail }
func (a *Activity) CreatedAt() time.Time { return a.createdAt }

// Metadata returns a copy of the entry's metadata.
func (a *Activity) Metadata() map[string]any {
	out := make(map[string]any, len(a.metadata))
	for k, v := range a.metadata {
		out[k] = v
	}
	return out
}

// SetID sets the activity ID (only for persistence layer use).
func (a *Activity) SetID(dbID uint) error {
	if a.id != 0 {
		return fmt.Errorf("activity ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("activity ID cannot be zero")
	}
	a.id = dbID
	return nil
}
