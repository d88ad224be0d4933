// Package store implements PostgreSQL persistence for master data and
// imported rows. It satisfies the importer's SnapshotLoader and Writer
// interfaces; all writes are single-row so partial batch progress survives
// interruption.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sitewise-app/sitewise/internal/importer"
	"github.com/sitewise-app/sitewise/internal/masterdata"
)

// DBTX is the subset of pgx operations the store needs. Both *pgxpool.Pool
// and pgx.Tx satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store reads master data and writes imported rows.
type Store struct {
	db DBTX
}

// New creates a store on top of a pool or transaction.
func New(db DBTX) *Store {
	return &Store{db: db}
}

const (
	employeesQuery = `SELECT id, COALESCE(badge_code, ''), full_name, '', COALESCE(aliases, '{}')
		FROM employees ORDER BY full_name`
	sitesQuery = `SELECT id, COALESCE(code, ''), name, '', COALESCE(aliases, '{}')
		FROM sites ORDER BY name`
	materialsQuery = `SELECT id, COALESCE(product_code, ''), name, COALESCE(brand, ''), '{}'::text[]
		FROM materials ORDER BY name`
)

// LoadIndex reads a fresh master-data snapshot. Called once at the start of
// each preview or commit; the returned Index is never refreshed mid-call.
func (s *Store) LoadIndex(ctx context.Context) (*masterdata.Index, error) {
	idx := &masterdata.Index{}

	var err error
	if idx.Employees, err = s.loadEntities(ctx, employeesQuery); err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	if idx.Sites, err = s.loadEntities(ctx, sitesQuery); err != nil {
		return nil, fmt.Errorf("loading sites: %w", err)
	}
	if idx.Materials, err = s.loadEntities(ctx, materialsQuery); err != nil {
		return nil, fmt.Errorf("loading materials: %w", err)
	}
	return idx, nil
}

func (s *Store) loadEntities(ctx context.Context, query string) ([]masterdata.Entity, error) {
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []masterdata.Entity
	for rows.Next() {
		var (
			id      pgtype.UUID
			e       masterdata.Entity
			aliases []string
		)
		if err := rows.Scan(&id, &e.Code, &e.DisplayName, &e.Qualifier, &aliases); err != nil {
			return nil, fmt.Errorf("scan entity row: %w", err)
		}
		e.ID = uuid.UUID(id.Bytes).String()
		e.Aliases = aliases
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

const (
	insertAttendance = `INSERT INTO attendance_entries
		(id, employee_id, site_id, work_date, hours, clock_in, clock_out)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	insertMaterial = `INSERT INTO materials
		(id, product_code, brand, name, category, quantity, unit, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
)

// Insert persists one entity. Each call is an independent write; the store
// never wraps a batch in a transaction.
func (s *Store) Insert(ctx context.Context, kind string, entity any) error {
	id := pgtype.UUID{Bytes: uuid.New(), Valid: true}

	switch e := entity.(type) {
	case *importer.AttendanceEntry:
		_, err := s.db.Exec(ctx, insertAttendance,
			id, e.EmployeeID, e.SiteID, e.Date, e.Hours, e.ClockIn, e.ClockOut)
		return err
	case *importer.Material:
		_, err := s.db.Exec(ctx, insertMaterial,
			id, nullable(e.ProductCode), e.Brand, e.Name, e.Category, e.Quantity, nullable(e.Unit), e.Price)
		return err
	default:
		return fmt.Errorf("unknown entity type for kind %s: %T", kind, entity)
	}
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
