package schema

// ModuleTable represents the 'modules' table
type ModuleTable struct {
	Table       string
	ID          string
	Description string
}

// Module is the schema definition for modules
var Module = ModuleTable{
	Table:       "modules",
	ID:          "id",
	Description: "description",
}

// Columns returns all standard column names
func (t ModuleTable) Columns() []string {
	return []string{t.ID, t.Description}
}
