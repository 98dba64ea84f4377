// Package schema defines table and column references for the Dentora database.
//
// Keeping every identifier in one place lets repositories build SQL without
// scattering string literals, and makes schema renames a one-file change.
package schema

// TenantTable represents the 'tenants' table
type TenantTable struct {
	Table         string
	ID            string
	TaxID         string
	Name          string
	DeactivatedAt string
	CreatedAt     string
}

// Tenant is the schema definition for tenants
var Tenant = TenantTable{
	Table:         "tenants",
	ID:            "id",
	TaxID:         "tax_id",
	Name:          "name",
	DeactivatedAt: "deactivated_at",
	CreatedAt:     "created_at",
}

// Columns returns all standard column names
func (t TenantTable) Columns() []string {
	return []string{t.ID, t.TaxID, t.Name, t.DeactivatedAt, t.CreatedAt}
}
