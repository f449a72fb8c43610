// Package repository provides database persistence for extracted payrolls.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/folhapay/payroll-extract/internal/domain/payroll"
	"github.com/folhapay/payroll-extract/pkg/period"
)

// PayrollRepository persists and retrieves complete payroll aggregates,
// keyed by period. At most one payroll exists per period; saving again for
// the same period replaces the previous one.
type PayrollRepository interface {
	// Save stores the payroll, replacing any previously stored payroll for
	// the same period, and returns the stored record's id.
	Save(ctx context.Context, p *payroll.Payroll) (uuid.UUID, error)

	// FindByPeriod loads the payroll stored for the period. It returns
	// sql.ErrNoRows when none exists.
	FindByPeriod(ctx context.Context, per period.Period) (*payroll.Payroll, error)

	// ListPeriods returns the periods with a stored payroll, most recent
	// insert first.
	ListPeriods(ctx context.Context) ([]period.Period, error)

	// DeleteByPeriod removes the payroll stored for the period. It returns
	// sql.ErrNoRows when none exists.
	DeleteByPeriod(ctx context.Context, per period.Period) error
}
