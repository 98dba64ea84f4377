package person

import "time"

// Person represents a human profile (patient or staff) inside one tenant.
//
// Every operation on this entity is tenant-scoped: the tenant id always comes
// from the session claims, never from the request payload.
type Person struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Address        *string   `json:"address"`
	CreatedAt      time.Time `json:"created_at"`
}

// Filter holds the parameters for a paginated person search.
type Filter struct {
	Query string // Matches names, email, and document number
}

// Global field names for validation
const (
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldEmail          = "email"
	FieldDocumentType   = "document_type"
	FieldDocumentNumber = "document_number"
)
