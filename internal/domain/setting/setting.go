// Package setting holds system configuration settings, including the
// provisioning validation policy gate.
package setting

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cloudesk-io/cloudesk/internal/shared/biztime"
	"github.com/cloudesk-io/cloudesk/internal/shared/id"
)

// ValueType defines the type of a setting value.
type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeInt    ValueType = "int"
	ValueTypeBool   ValueType = "bool"
)

// String returns the string representation of the value type
func (vt ValueType) String() string {
	return string(vt)
}

// Well-known settings.
const (
	// CategoryProvisioning groups the ordering/provisioning settings.
	CategoryProvisioning = "provisioning"

	// KeyRequireValidation is the validation policy gate: whether
	// self-service-added entitlements start pending (true) or active
	// (false). Global scope: the gate is process-wide, not per company.
	KeyRequireValidation = "require_validation"
)

// SystemSetting represents a system configuration setting.
type SystemSetting struct {
	id          uint
	sid         string
	category    string
	key         string
	value       string
	valueType   ValueType
	description string
	updatedBy   uint
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewSystemSetting creates a new system setting.
func NewSystemSetting(category, key string, valueType ValueType, description string) (*SystemSetting, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if !isValidValueType(valueType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValueType, valueType)
	}

	sid, err := id.NewSettingID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &SystemSetting{
		sid:         sid,
		category:    category,
		key:         key,
		valueType:   valueType,
		description: description,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructSystemSetting reconstructs a SystemSetting from persistence.
func ReconstructSystemSetting(
	dbID uint,
	sid string,
	category, key, value string,
	valueType ValueType,
	description string,
	updatedBy uint,
	version int,
	createdAt, updatedAt time.Time,
) *SystemSetting {
	return &SystemSetting{
		id:          dbID,
		sid:         sid,
		category:    category,
		key:         key,
		value:       value,
		valueType:   valueType,
		description: description,
		updatedBy:   updatedBy,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *SystemSetting) ID() uint             { return s.id }
func (s *SystemSetting) SID() string          { return s.sid }
func (s *SystemSetting) Category() string     { return s.category }
func (s *SystemSetting) Key() string          { return s.key }
func (s *SystemSetting) Value() string        { return s.value }
func (s *SystemSetting) ValueType() ValueType { return s.valueType }
func (s *SystemSetting) Description() string  { return s.description }
func (s *SystemSetting) UpdatedBy() uint      { return s.updatedBy }
func (s *SystemSetting) Version() int         { return s.version }
func (s *SystemSetting) CreatedAt() time.Time { return s.createdAt }
func (s *SystemSetting) UpdatedAt() time.Time { return s.updatedAt }

// SetID sets the setting ID (only for persistence layer use).
func (s *SystemSetting) SetID(dbID uint) error {
	if s.id != 0 {
		return fmt.Errorf("setting ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("setting ID cannot be zero")
	}
	s.id = dbID
	return nil
}

// BoolValue parses the setting as a bool.
func (s *SystemSetting) BoolValue() (bool, error) {
	if s.valueType != ValueTypeBool {
		return false, fmt.Errorf("%w: setting %s.%s is %s, not bool", ErrInvalidValueType, s.category, s.key, s.valueType)
	}
	v, err := strconv.ParseBool(s.value)
	if err != nil {
		return false, fmt.Errorf("invalid bool value %q for %s.%s: %w", s.value, s.category, s.key, err)
	}
	return v, nil
}

// IntValue parses the setting as an int.
func (s *SystemSetting) IntValue() (int, error) {
	if s.valueType != ValueTypeInt {
		return 0, fmt.Errorf("%w: setting %s.%s is %s, not int", ErrInvalidValueType, s.category, s.key, s.valueType)
	}
	v, err := strconv.Atoi(s.value)
	if err != nil {
		return 0, fmt.Errorf("invalid int value %q for %s.%s: %w", s.value, s.category, s.key, err)
	}
	return v, nil
}

// SetBoolValue updates a bool setting, recording the acting user.
func (s *SystemSetting) SetBoolValue(v bool, updatedBy uint) error {
	if s.valueType != ValueTypeBool {
		return fmt.Errorf("%w: setting %s.%s is %s, not bool", ErrInvalidValueType, s.category, s.key, s.valueType)
	}
	s.value = strconv.FormatBool(v)
	s.updatedBy = updatedBy
	s.updatedAt = biztime.NowUTC()
	s.version++
	return nil
}

// SetStringValue updates a string setting, recording the acting user.
func (s *SystemSetting) SetStringValue(v string, updatedBy uint) error {
	if s.valueType != ValueTypeString {
		return fmt.Errorf("%w: setting %s.%s is %s, not string", ErrInvalidValueType, s.category, s.key, s.valueType)
	}
	s.value = v
	s.updatedBy = updatedBy
	s.updatedAt = biztime.NowUTC()
	s.version++
	return nil
}

func isValidValueType(vt ValueType) bool {
	switch vt {
	case ValueTypeString, ValueTypeInt, ValueTypeBool:
		return true
	}
	return false
}
