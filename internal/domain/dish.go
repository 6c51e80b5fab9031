package domain

import "time"

// Dish represents a menu item whose ficha (info sheet) feeds the knowledge base.
type Dish struct {
	ID         int64
	Name       string
	Category   string
	PriceCents int
	Tags       []string
	IsActive   bool
	CreatedAt  time.Time
}

// ValidateDish validates a Dish instance
func ValidateDish(d *Dish) error {
	if d == nil {
		return NewDomainError(ErrCodeValidation, "dish cannot be nil")
	}

	if d.Name == "" {
		return NewDomainError(ErrCodeValidation, "dish Name is required")
	}

	if d.Category == "" {
		return NewDomainError(ErrCodeValidation, "dish Category is required")
	}

	if d.PriceCents < 0 {
		return NewDomainError(ErrCodeValidation, "dish PriceCents cannot be negative")
	}

	return nil
}
