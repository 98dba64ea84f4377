package schema

// PersonTable represents the 'people' table
type PersonTable struct {
	Table          string
	ID             string
	TenantID       string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	DocumentType   string
	DocumentNumber string
	Address        string
	CreatedAt      string
}

// Person is the schema definition for people
var Person = PersonTable{
	Table:          "people",
	ID:             "id",
	TenantID:       "tenant_id",
	FirstName:      "first_name",
	LastName:       "last_name",
	Email:          "email",
	Phone:          "phone",
	DocumentType:   "document_type",
	DocumentNumber: "document_number",
	Address:        "address",
	CreatedAt:      "created_at",
}

// Columns returns all standard column names
func (t PersonTable) Columns() []string {
	return []string{
		t.ID, t.TenantID, t.FirstName, t.LastName, t.Email,
		t.Phone, t.DocumentType, t.DocumentNumber, t.Address, t.CreatedAt,
	}
}
