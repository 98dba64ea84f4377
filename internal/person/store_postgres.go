package person

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

func (repository *PostgresRepository) ListPeople(ctx context.Context, tenantID string, f Filter, limit, offset int) ([]*Person, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Person.ID, schema.Person.TenantID, schema.Person.FirstName, schema.Person.LastName,
		schema.Person.Email, schema.Person.Phone, schema.Person.DocumentType,
		schema.Person.DocumentNumber, schema.Person.Address, schema.Person.CreatedAt,
		schema.Person.Table, schema.Person.TenantID,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.Person.Table, schema.Person.TenantID,
	)

	args := []any{tenantID}
	countArgs := []any{tenantID}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		clause := ` AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2 OR document_number ILIKE $2)`
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC LIMIT $", schema.Person.LastName, schema.Person.FirstName) +
		strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_people")
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_people")
	}
	defer rows.Close()

	var people []*Person
	for rows.Next() {
		p := &Person{}
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.FirstName, &p.LastName, &p.Email,
			&p.Phone, &p.DocumentType, &p.DocumentNumber, &p.Address, &p.CreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_person")
		}
		people = append(people, p)
	}

	return people, total, nil
}

func (repository *PostgresRepository) GetPerson(ctx context.Context, tenantID, id string) (*Person, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.Person.ID, schema.Person.TenantID, schema.Person.FirstName, schema.Person.LastName,
		schema.Person.Email, schema.Person.Phone, schema.Person.DocumentType,
		schema.Person.DocumentNumber, schema.Person.Address, schema.Person.CreatedAt,
		schema.Person.Table, schema.Person.TenantID, schema.Person.ID,
	)
	p := &Person{}

	err := repository.db.QueryRow(ctx, query, tenantID, id).Scan(
		&p.ID, &p.TenantID, &p.FirstName, &p.LastName, &p.Email,
		&p.Phone, &p.DocumentType, &p.DocumentNumber, &p.Address, &p.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "get_person")
	}
	return p, nil
}

func (repository *PostgresRepository) CreatePerson(ctx context.Context, p *Person) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING %s
	`,
		schema.Person.Table,
		schema.Person.ID, schema.Person.TenantID, schema.Person.FirstName, schema.Person.LastName,
		schema.Person.Email, schema.Person.Phone, schema.Person.DocumentType,
		schema.Person.DocumentNumber, schema.Person.Address, schema.Person.CreatedAt,
		schema.Person.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		p.ID, p.TenantID, p.FirstName, p.LastName, p.Email,
		p.Phone, p.DocumentType, p.DocumentNumber, p.Address,
	).Scan(&p.CreatedAt)

	return dberr.Wrap(err, "create_person")
}

func (repository *PostgresRepository) UpdatePerson(ctx context.Context, p *Person) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1 AND %s = $2
	`,
		schema.Person.Table,
		schema.Person.FirstName, schema.Person.LastName, schema.Person.Email, schema.Person.Phone,
		schema.Person.DocumentType, schema.Person.DocumentNumber, schema.Person.Address,
		schema.Person.TenantID, schema.Person.ID,
	)

	cmd, err := repository.db.Exec(ctx, query,
		p.TenantID, p.ID, p.FirstName, p.LastName, p.Email,
		p.Phone, p.DocumentType, p.DocumentNumber, p.Address,
	)
	if err != nil {
		return dberr.Wrap(err, "update_person")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeletePerson(ctx context.Context, tenantID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Person.Table, schema.Person.TenantID, schema.Person.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, tenantID, id)
	if err != nil {
		return dberr.Wrap(err, "delete_person")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
