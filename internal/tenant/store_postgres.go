package tenant

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentora/dentora/internal/platform/database/schema"
	"github.com/dentora/dentora/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListTenants(ctx context.Context, f Filter, limit, offset int) ([]*Tenant, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
	`,
		schema.Tenant.ID, schema.Tenant.TaxID, schema.Tenant.Name,
		schema.Tenant.DeactivatedAt, schema.Tenant.CreatedAt,
		schema.Tenant.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Tenant.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		query += ` WHERE (name ILIKE $1 OR tax_id ILIKE $1)`
		countQuery += ` WHERE (name ILIKE $1 OR tax_id ILIKE $1)`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $", schema.Tenant.Name) + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tenants")
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tenants")
	}
	defer rows.Close()

	var tenants []*Tenant
	for rows.Next() {
		t := &Tenant{}
		if err := rows.Scan(&t.ID, &t.TaxID, &t.Name, &t.DeactivatedAt, &t.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tenant")
		}
		tenants = append(tenants, t)
	}

	return tenants, total, nil
}

func (repository *PostgresRepository) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Tenant.ID, schema.Tenant.TaxID, schema.Tenant.Name,
		schema.Tenant.DeactivatedAt, schema.Tenant.CreatedAt,
		schema.Tenant.Table, schema.Tenant.ID,
	)
	t := &Tenant{}

	err := repository.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.TaxID, &t.Name, &t.DeactivatedAt, &t.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "get_tenant")
	}
	return t, nil
}

func (repository *PostgresRepository) CreateTenant(ctx context.Context, t *Tenant) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s
	`,
		schema.Tenant.Table, schema.Tenant.ID, schema.Tenant.TaxID,
		schema.Tenant.Name, schema.Tenant.CreatedAt,
		schema.Tenant.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query, t.ID, t.TaxID, t.Name).Scan(&t.CreatedAt)
	return dberr.Wrap(err, "create_tenant")
}

func (repository *PostgresRepository) UpdateTenant(ctx context.Context, t *Tenant) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1
	`,
		schema.Tenant.Table, schema.Tenant.TaxID, schema.Tenant.Name, schema.Tenant.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, t.ID, t.TaxID, t.Name)
	if err != nil {
		return dberr.Wrap(err, "update_tenant")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeactivateTenant(ctx context.Context, id string) error {
	// Idempotent: an already-deactivated tenant keeps its original date.
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.Tenant.Table, schema.Tenant.DeactivatedAt, schema.Tenant.ID, schema.Tenant.DeactivatedAt,
	)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "deactivate_tenant")
	}

	if cmd.RowsAffected() == 0 {
		return repository.ensureExists(ctx, id)
	}
	return nil
}

func (repository *PostgresRepository) ReactivateTenant(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
		schema.Tenant.Table, schema.Tenant.DeactivatedAt, schema.Tenant.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "reactivate_tenant")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// ensureExists distinguishes "already deactivated" from "no such tenant".
func (repository *PostgresRepository) ensureExists(ctx context.Context, id string) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1`, schema.Tenant.Table, schema.Tenant.ID)

	var one int
	if err := repository.db.QueryRow(ctx, query, id).Scan(&one); err != nil {
		return dberr.Wrap(err, "ensure_tenant_exists")
	}
	return nil
}
