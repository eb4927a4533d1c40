package order

import (
	"fmt"

	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/pricing"
)

// Cart accumulates service selections before an order is built. It
// enforces the category exclusivity rule: categories marked exclusive
// (remote desktop) allow a single selection, and adding another silently
// replaces the previous one. All other categories accumulate.
type Cart struct {
	selections []LineInput
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts a service with its chosen commitment duration into the cart.
// Re-adding the same service replaces its duration choice.
func (c *Cart) Add(service *catalog.ServiceOffering, duration pricing.CommitmentDuration) error {
	if service == nil {
		return fmt.Errorf("service reference is required")
	}
	if !service.Active() {
		return fmt.Errorf("%w: %s", catalog.ErrServiceInactive, service.Name())
	}
	if !duration.IsValid() {
		return fmt.Errorf("%w: %d months for %s", pricing.ErrInvalidDuration, duration, service.Name())
	}

	input := LineInput{Service: service, Duration: duration, DurationChosen: true}

	for i, sel := range c.selections {
		sameService := sel.Service.ID() == service.ID()
		exclusiveClash := service.Category().Exclusive() && sel.Service.Category() == service.Category()
		if sameService || exclusiveClash {
			c.selections[i] = input
			return nil
		}
	}

	c.selections = append(c.selections, input)
	return nil
}

// Remove drops a service from the cart. Removing an absent service is a
// no-op.
func (c *Cart) Remove(serviceID uint) {
	for i, sel := range c.selections {
		if sel.Service.ID() == serviceID {
			c.selections = append(c.selections[:i], c.selections[i+1:]...)
			return
		}
	}
}

// Selections returns a copy of the current cart content in insertion
// order (replacements keep the original position).
func (c *Cart) Selections() []LineInput {
	out := make([]LineInput, len(c.selections))
	copy(out, c.selections)
	return out
}

// IsEmpty reports whether the cart has no selections.
func (c *Cart) IsEmpty() bool {
	return len(c.selections) == 0
}
