package permission

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

func (repository *PostgresRepository) ListPermissions(ctx context.Context, f Filter, limit, offset int) ([]*Permission, int, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s, m.%s
		FROM %s p
		JOIN %s m ON m.%s = p.%s
	`,
		schema.Permission.ID, schema.Permission.Name, schema.Permission.Description,
		schema.Permission.IsPrivate, schema.Permission.ModuleID, schema.Module.Description,
		schema.Permission.Table, schema.Module.Table, schema.Module.ID, schema.Permission.ModuleID,
	)
	countQuery := fmt.Sprintf(`
		SELECT count(*)
		FROM %s p
		JOIN %s m ON m.%s = p.%s
	`,
		schema.Permission.Table, schema.Module.Table, schema.Module.ID, schema.Permission.ModuleID,
	)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		clause := ` WHERE (p.name ILIKE $1 OR p.description ILIKE $1 OR m.description ILIKE $1)`
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += ` ORDER BY m.description ASC, p.name ASC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_permissions")
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_permissions")
	}
	defer rows.Close()

	var permissions []*Permission
	for rows.Next() {
		p := &Permission{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IsPrivate, &p.ModuleID, &p.ModuleName); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_permission")
		}
		permissions = append(permissions, p)
	}

	return permissions, total, nil
}

func (repository *PostgresRepository) GetPermission(ctx context.Context, id string) (*Permission, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s, m.%s
		FROM %s p
		JOIN %s m ON m.%s = p.%s
		WHERE p.%s = $1
	`,
		schema.Permission.ID, schema.Permission.Name, schema.Permission.Description,
		schema.Permission.IsPrivate, schema.Permission.ModuleID, schema.Module.Description,
		schema.Permission.Table, schema.Module.Table, schema.Module.ID, schema.Permission.ModuleID,
		schema.Permission.ID,
	)
	p := &Permission{}

	err := repository.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.IsPrivate, &p.ModuleID, &p.ModuleName,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "get_permission")
	}
	return p, nil
}

func (repository *PostgresRepository) CreatePermission(ctx context.Context, p *Permission) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.Permission.Table, schema.Permission.ID, schema.Permission.Name,
		schema.Permission.Description, schema.Permission.IsPrivate, schema.Permission.ModuleID,
	)

	_, err := repository.db.Exec(ctx, query, p.ID, p.Name, p.Description, p.IsPrivate, p.ModuleID)
	return dberr.Wrap(err, "create_permission")
}

func (repository *PostgresRepository) UpdatePermission(ctx context.Context, p *Permission) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`,
		schema.Permission.Table, schema.Permission.Name, schema.Permission.Description,
		schema.Permission.IsPrivate, schema.Permission.ModuleID, schema.Permission.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, p.ID, p.Name, p.Description, p.IsPrivate, p.ModuleID)
	if err != nil {
		return dberr.Wrap(err, "update_permission")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeletePermission(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Permission.Table, schema.Permission.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_permission")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
