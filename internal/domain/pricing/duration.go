package pricing

// CommitmentDuration is the number of months a buyer commits to.
// Only the enumerated values are valid; there is no implicit clamping.
type CommitmentDuration int

const (
	DurationNone     CommitmentDuration = 0
	Duration12Months CommitmentDuration = 12
	Duration24Months CommitmentDuration = 24
	Duration36Months CommitmentDuration = 36
)

// ValidDurations lists every accepted commitment duration.
var ValidDurations = []CommitmentDuration{
	DurationNone,
	Duration12Months,
	Duration24Months,
	Duration36Months,
}

// IsValid reports whether d is one of the enumerated durations.
func (d CommitmentDuration) IsValid() bool {
	switch d {
	case DurationNone, Duration12Months, Duration24Months, Duration36Months:
		return true
	}
	return false
}

// Months returns the raw month count.
func (d CommitmentDuration) Months() int {
	return int(d)
}

// BillableMonths returns the number of months used for total price
// computation. A commitment of zero months is billed as a single
// month equivalent, never as zero.
func (d CommitmentDuration) BillableMonths() int {
	if d <= 0 {
		return 1
	}
	return int(d)
}
