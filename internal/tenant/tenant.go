package tenant

import "time"

// Tenant represents a customer organization subscribed to the platform.
type Tenant struct {
	ID            string     `json:"id"`
	TaxID         string     `json:"tax_id"`
	Name          string     `json:"name"`
	DeactivatedAt *time.Time `json:"deactivated_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Filter holds the parameters for a paginated tenant search.
type Filter struct {
	Query string // Matches against name and tax_id
}

// Global field names for validation
const (
	FieldTaxID = "tax_id"
	FieldName  = "name"
)
