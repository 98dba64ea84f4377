package module

import "context"

// Module represents a functional area of the application (e.g. appointments,
// billing) that permissions are grouped under.
type Module struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Filter holds the parameters for a paginated module search.
type Filter struct {
	Query string // Matches against description
}

// Global field names for validation
const (
	FieldDescription = "description"
)

type Repository interface {
	ListModules(ctx context.Context, f Filter, limit, offset int) ([]*Module, int, error)
	GetModule(ctx context.Context, id string) (*Module, error)
	CreateModule(ctx context.Context, m *Module) error
	UpdateModule(ctx context.Context, m *Module) error
	DeleteModule(ctx context.Context, id string) error
}
