package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Balance counter keys. The leave package maps each leave type onto exactly
// one of these.
const (
	BalanceSick          = "sick"
	BalancePersonal      = "personal"
	BalanceVacation      = "vacation"
	BalanceMaternity     = "maternity"
	BalancePaternity     = "paternity"
	BalanceOrdination    = "ordination"
	BalanceMilitary      = "military"
	BalanceSterilization = "sterilization"
	BalanceTraining      = "training"
	BalanceFuneral       = "funeral"
	BalanceUnpaid        = "unpaid"
)

// LeaveBalances is the fixed-shape per-category day counters, stored as a
// single JSONB column on users.
type LeaveBalances struct {
	Sick          int `json:"sick"`
	Personal      int `json:"personal"`
	Vacation      int `json:"vacation"`
	Maternity     int `json:"maternity"`
	Paternity     int `json:"paternity"`
	Ordination    int `json:"ordination"`
	Military      int `json:"military"`
	Sterilization int `json:"sterilization"`
	Training      int `json:"training"`
	Funeral       int `json:"funeral"`
	Unpaid        int `json:"unpaid"`
}

// DefaultLeaveBalances returns the yearly allotment for a new employee,
// following the company's Thai-labor-law-informed policy.
func DefaultLeaveBalances() LeaveBalances {
	return LeaveBalances{
		Sick:          30,
		Personal:      6,
		Vacation:      10,
		Maternity:     98,
		Paternity:     15,
		Ordination:    15,
		Military:      60,
		Sterilization: 10,
		Training:      10,
		Funeral:       3,
		Unpaid:        30,
	}
}

// Counter returns a pointer to the counter for key so callers can adjust it
// in place. The bool is false for unknown keys.
func (b *LeaveBalances) Counter(key string) (*int, bool) {
	switch key {
	case BalanceSick:
		return &b.Sick, true
	case BalancePersonal:
		return &b.Personal, true
	case BalanceVacation:
		return &b.Vacation, true
	case BalanceMaternity:
		return &b.Maternity, true
	case BalancePaternity:
		return &b.Paternity, true
	case BalanceOrdination:
		return &b.Ordination, true
	case BalanceMilitary:
		return &b.Military, true
	case BalanceSterilization:
		return &b.Sterilization, true
	case BalanceTraining:
		return &b.Training, true
	case BalanceFuneral:
		return &b.Funeral, true
	case BalanceUnpaid:
		return &b.Unpaid, true
	default:
		return nil, false
	}
}

// Value implements driver.Valuer for the JSONB column.
func (b LeaveBalances) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for the JSONB column.
func (b *LeaveBalances) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	case nil:
		*b = LeaveBalances{}
		return nil
	default:
		return fmt.Errorf("unsupported type for leave balances: %T", src)
	}
}
