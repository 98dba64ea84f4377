package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table        string
	ID           string
	TenantID     string
	PersonID     string
	Username     string
	PasswordHash string
	LastLogin    string
	CreatedAt    string
}

// User is the schema definition for users
var User = UserTable{
	Table:        "users",
	ID:           "id",
	TenantID:     "tenant_id",
	PersonID:     "person_id",
	Username:     "username",
	PasswordHash: "password_hash",
	LastLogin:    "last_login",
	CreatedAt:    "created_at",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{
		t.ID, t.TenantID, t.PersonID, t.Username,
		t.PasswordHash, t.LastLogin, t.CreatedAt,
	}
}
