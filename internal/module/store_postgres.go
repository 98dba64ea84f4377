package module

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

func (repository *PostgresRepository) ListModules(ctx context.Context, f Filter, limit, offset int) ([]*Module, int, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s`,
		schema.Module.ID, schema.Module.Description, schema.Module.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Module.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		query += ` WHERE description ILIKE $1`
		countQuery += ` WHERE description ILIKE $1`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $", schema.Module.Description) + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_modules")
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_modules")
	}
	defer rows.Close()

	var modules []*Module
	for rows.Next() {
		m := &Module{}
		if err := rows.Scan(&m.ID, &m.Description); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_module")
		}
		modules = append(modules, m)
	}

	return modules, total, nil
}

func (repository *PostgresRepository) GetModule(ctx context.Context, id string) (*Module, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.Module.ID, schema.Module.Description, schema.Module.Table, schema.Module.ID,
	)
	m := &Module{}

	if err := repository.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Description); err != nil {
		return nil, dberr.Wrap(err, "get_module")
	}
	return m, nil
}

func (repository *PostgresRepository) CreateModule(ctx context.Context, m *Module) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.Module.Table, schema.Module.ID, schema.Module.Description,
	)

	_, err := repository.db.Exec(ctx, query, m.ID, m.Description)
	return dberr.Wrap(err, "create_module")
}

func (repository *PostgresRepository) UpdateModule(ctx context.Context, m *Module) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Module.Table, schema.Module.Description, schema.Module.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, m.ID, m.Description)
	if err != nil {
		return dberr.Wrap(err, "update_module")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteModule(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Module.Table, schema.Module.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_module")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
