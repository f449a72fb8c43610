package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/folhapay/payroll-extract/internal/domain/payroll"
	"github.com/folhapay/payroll-extract/pkg/money"
	"github.com/folhapay/payroll-extract/pkg/period"
)

// DB is the subset of pgxpool.Pool the repository needs. Satisfied by
// *pgxpool.Pool and by pgxmock pools in tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresPayrollRepository implements PayrollRepository using PostgreSQL.
type PostgresPayrollRepository struct {
	db DB
}

// NewPostgresPayrollRepository creates a new PostgreSQL payroll repository.
func NewPostgresPayrollRepository(db DB) *PostgresPayrollRepository {
	return &PostgresPayrollRepository{db: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS payrolls (
		id UUID PRIMARY KEY,
		period TEXT NOT NULL UNIQUE,
		employee_count INT NOT NULL,
		total_gross_cents BIGINT NOT NULL,
		total_net_cents BIGINT NOT NULL,
		currency_code TEXT NOT NULL DEFAULT 'BRL',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS payroll_employees (
		payroll_id UUID NOT NULL REFERENCES payrolls(id) ON DELETE CASCADE,
		ordinal INT NOT NULL,
		employee_id TEXT NOT NULL,
		name TEXT NOT NULL,
		position TEXT NOT NULL,
		gross_cents BIGINT NOT NULL,
		net_cents BIGINT NOT NULL,
		page INT NOT NULL,
		PRIMARY KEY (payroll_id, employee_id)
	);`

// EnsureSchema creates the payroll tables if they do not exist.
func (r *PostgresPayrollRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure payroll schema: %w", err)
	}
	return nil
}

// Save stores the payroll inside a transaction, replacing any payroll
// previously stored for the same period.
func (r *PostgresPayrollRepository) Save(ctx context.Context, p *payroll.Payroll) (uuid.UUID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM payrolls WHERE period = $1`, p.Period().String()); err != nil {
		return uuid.Nil, fmt.Errorf("failed to replace payroll: %w", err)
	}

	id := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO payrolls (id, period, employee_count, total_gross_cents, total_net_cents, currency_code)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id,
		p.Period().String(),
		p.EmployeeCount(),
		p.TotalGross().Amount(),
		p.TotalNet().Amount(),
		p.TotalGross().Currency(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert payroll: %w", err)
	}

	for ordinal, e := range p.Employees() {
		_, err = tx.Exec(ctx, `
			INSERT INTO payroll_employees (payroll_id, ordinal, employee_id, name, position, gross_cents, net_cents, page)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id,
			ordinal,
			e.ID(),
			e.Name(),
			e.Position(),
			e.GrossValue().Amount(),
			e.NetValue().Amount(),
			e.Page(),
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert employee %s: %w", e.ID(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit save: %w", err)
	}
	return id, nil
}

// FindByPeriod loads and rebuilds the payroll stored for the period.
func (r *PostgresPayrollRepository) FindByPeriod(ctx context.Context, per period.Period) (*payroll.Payroll, error) {
	var (
		id       uuid.UUID
		currency string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, currency_code FROM payrolls WHERE period = $1`,
		per.String(),
	).Scan(&id, &currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT employee_id, name, position, gross_cents, net_cents, page
		FROM payroll_employees
		WHERE payroll_id = $1
		ORDER BY ordinal`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	defer rows.Close()

	p := payroll.New(per)
	for rows.Next() {
		var (
			employeeID, name, position string
			grossCents, netCents       int64
			page                       int
		)
		if err := rows.Scan(&employeeID, &name, &position, &grossCents, &netCents, &page); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}

		e, err := payroll.NewEmployee(employeeID, name, position,
			money.New(grossCents, currency), money.New(netCents, currency), page)
		if err != nil {
			return nil, fmt.Errorf("stored employee %s is invalid: %w", employeeID, err)
		}
		if err := p.AddEmployee(e); err != nil {
			return nil, fmt.Errorf("failed to rebuild payroll: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	return p, nil
}

// ListPeriods returns the stored periods, most recent insert first.
func (r *PostgresPayrollRepository) ListPeriods(ctx context.Context) ([]period.Period, error) {
	rows, err := r.db.Query(ctx, `SELECT period FROM payrolls ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	var periods []period.Period
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		per, err := period.FromString(s)
		if err != nil {
			return nil, fmt.Errorf("stored period %q is invalid: %w", s, err)
		}
		periods = append(periods, per)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read periods: %w", err)
	}
	return periods, nil
}

// DeleteByPeriod removes the payroll stored for the period.
func (r *PostgresPayrollRepository) DeleteByPeriod(ctx context.Context, per period.Period) error {
	result, err := r.db.Exec(ctx, `DELETE FROM payrolls WHERE period = $1`, per.String())
	if err != nil {
		return fmt.Errorf("failed to delete payroll: %w", err)
	}
	if result.RowsAffected() == 0 {
		return sql.ErrNoRows
	}
	return nil
}
