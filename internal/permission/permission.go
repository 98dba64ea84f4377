package permission

import "context"

// Permission represents a named capability grouped under a module.
type Permission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
	ModuleID    string `json:"module_id"`
	// ModuleName is denormalized from the modules table on list/get.
	ModuleName string `json:"module_name,omitempty"`
}

// Filter holds the parameters for a paginated permission search.
type Filter struct {
	Query string // Matches name, description, and module description
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldModuleID    = "module_id"
)

type Repository interface {
	ListPermissions(ctx context.Context, f Filter, limit, offset int) ([]*Permission, int, error)
	GetPermission(ctx context.Context, id string) (*Permission, error)
	CreatePermission(ctx context.Context, p *Permission) error
	UpdatePermission(ctx context.Context, p *Permission) error
	DeletePermission(ctx context.Context, id string) error
}
