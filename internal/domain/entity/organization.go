package entity

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a logistics operator, supplier, or customer that owns
// vehicles and route history.
type Organization struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the organization.
	Name         string    // Display name.
	Type         string    // Organization category (e.g., "logistics", "supplier", "customer").
	ContactEmail string    // Optional contact email.
	ContactPhone string    // Optional contact phone.
	Address      string    // Optional postal address.
	CreatedAt    time.Time // Timestamp of when this organization was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
