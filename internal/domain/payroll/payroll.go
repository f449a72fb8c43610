package payroll

import (
	"errors"
	"fmt"
	"sort"

	"github.com/folhapay/payroll-extract/pkg/money"
	"github.com/folhapay/payroll-extract/pkg/period"
)

// ErrDuplicateEmployee indicates an add of an id already in the payroll.
var ErrDuplicateEmployee = errors.New("employee already exists in payroll")

// Payroll is the aggregate root: an ordered collection of employees, unique
// by id, under one period. Aggregate totals are computed lazily and cached;
// any structural mutation invalidates the cache.
type Payroll struct {
	period    period.Period
	employees []*Employee

	totalGross *money.Money
	totalNet   *money.Money
}

// New creates an empty Payroll for the given period.
func New(p period.Period) *Payroll {
	return &Payroll{period: p}
}

// Period returns the payroll period.
func (p *Payroll) Period() period.Period { return p.period }

// AddEmployee appends an employee, rejecting duplicate ids.
func (p *Payroll) AddEmployee(e *Employee) error {
	for _, existing := range p.employees {
		if existing.id == e.id {
			return fmt.Errorf("%w: %s", ErrDuplicateEmployee, e.id)
		}
	}
	p.employees = append(p.employees, e)
	p.invalidateTotals()
	return nil
}

// RemoveEmployee removes the employee with the given id. It reports whether
// an employee was removed; a missing id is not an error.
func (p *Payroll) RemoveEmployee(id string) bool {
	for i, e := range p.employees {
		if e.id == id {
			p.employees = append(p.employees[:i], p.employees[i+1:]...)
			p.invalidateTotals()
			return true
		}
	}
	return false
}

// GetEmployee finds an employee by id.
func (p *Payroll) GetEmployee(id string) (*Employee, bool) {
	for _, e := range p.employees {
		if e.id == id {
			return e, true
		}
	}
	return nil, false
}

// Employees returns the employees in insertion order. The returned slice is
// a copy; the aggregate exclusively owns its employee list.
func (p *Payroll) Employees() []*Employee {
	out := make([]*Employee, len(p.employees))
	copy(out, p.employees)
	return out
}

// EmployeeCount returns the number of employees.
func (p *Payroll) EmployeeCount() int { return len(p.employees) }

func (p *Payroll) invalidateTotals() {
	p.totalGross = nil
	p.totalNet = nil
}

func (p *Payroll) computeTotals() {
	if p.totalGross != nil && p.totalNet != nil {
		return
	}
	gross := money.Zero()
	net := money.Zero()
	for _, e := range p.employees {
		// All employee values share the aggregate currency.
		gross, _ = gross.Add(e.gross)
		net, _ = net.Add(e.net)
	}
	p.totalGross = gross
	p.totalNet = net
}

// TotalGross returns the cached sum of all gross values.
func (p *Payroll) TotalGross() *money.Money {
	p.computeTotals()
	return p.totalGross
}

// TotalNet returns the cached sum of all net values.
func (p *Payroll) TotalNet() *money.Money {
	p.computeTotals()
	return p.totalNet
}

// TotalDeductions returns total gross minus total net.
func (p *Payroll) TotalDeductions() *money.Money {
	d, _ := p.TotalGross().Subtract(p.TotalNet())
	return d
}

// AverageGross returns the mean gross value, zero for an empty payroll.
func (p *Payroll) AverageGross() *money.Money {
	if len(p.employees) == 0 {
		return money.Zero()
	}
	avg, _ := p.TotalGross().DivInt(len(p.employees))
	return avg
}

// AverageNet returns the mean net value, zero for an empty payroll.
func (p *Payroll) AverageNet() *money.Money {
	if len(p.employees) == 0 {
		return money.Zero()
	}
	avg, _ := p.TotalNet().DivInt(len(p.employees))
	return avg
}

// WithPayment returns the employees with positive net pay.
func (p *Payroll) WithPayment() []*Employee {
	var out []*Employee
	for _, e := range p.employees {
		if e.HasPayment() {
			out = append(out, e)
		}
	}
	return out
}

// WithoutPayment returns the employees with zero net pay.
func (p *Payroll) WithoutPayment() []*Employee {
	var out []*Employee
	for _, e := range p.employees {
		if !e.HasPayment() {
			out = append(out, e)
		}
	}
	return out
}

// ByPosition returns the employees holding the given position.
func (p *Payroll) ByPosition(position string) []*Employee {
	var out []*Employee
	for _, e := range p.employees {
		if e.position == position {
			out = append(out, e)
		}
	}
	return out
}

// SortByGrossDescending orders employees by gross value, highest first.
func (p *Payroll) SortByGrossDescending() {
	sort.SliceStable(p.employees, func(i, j int) bool {
		return p.employees[i].gross.GreaterThan(p.employees[j].gross)
	})
}

// SortByName orders employees alphabetically.
func (p *Payroll) SortByName() {
	sort.SliceStable(p.employees, func(i, j int) bool {
		return p.employees[i].name < p.employees[j].name
	})
}

func (p *Payroll) String() string {
	return fmt.Sprintf("Payroll(%s, %d employees, Total Gross: %s, Total Net: %s)",
		p.period, p.EmployeeCount(), p.TotalGross(), p.TotalNet())
}

// Snapshot is the flat export shape of a whole payroll.
type Snapshot struct {
	Period          string           `json:"period"`
	PeriodFull      string           `json:"period_full"`
	EmployeeCount   int              `json:"employee_count"`
	TotalGross      float64          `json:"total_gross"`
	TotalNet        float64          `json:"total_net"`
	TotalDeductions float64          `json:"total_deductions"`
	AverageGross    float64          `json:"average_gross"`
	AverageNet      float64          `json:"average_net"`
	Employees       []EmployeeRecord `json:"employees"`
}

// Snapshot converts the payroll into its export shape.
func (p *Payroll) Snapshot() Snapshot {
	records := make([]EmployeeRecord, 0, len(p.employees))
	for _, e := range p.employees {
		records = append(records, e.Record())
	}
	return Snapshot{
		Period:          p.period.String(),
		PeriodFull:      p.period.FullName(),
		EmployeeCount:   p.EmployeeCount(),
		TotalGross:      p.TotalGross().Float64(),
		TotalNet:        p.TotalNet().Float64(),
		TotalDeductions: p.TotalDeductions().Float64(),
		AverageGross:    p.AverageGross().Float64(),
		AverageNet:      p.AverageNet().Float64(),
		Employees:       records,
	}
}
