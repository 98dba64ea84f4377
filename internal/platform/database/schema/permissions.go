package schema

// PermissionTable represents the 'permissions' table
type PermissionTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	IsPrivate   string
	ModuleID    string
}

// Permission is the schema definition for permissions
var Permission = PermissionTable{
	Table:       "permissions",
	ID:          "id",
	Name:        "name",
	Description: "description",
	IsPrivate:   "is_private",
	ModuleID:    "module_id",
}

// Columns returns all standard column names
func (t PermissionTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.IsPrivate, t.ModuleID}
}
