package leave

import "github.com/servicein2it/leave-in2it-sub000/internal/user"

// Leave type enumeration. Every type maps to exactly one balance counter on
// the user record; the mapping lives only in this table.
const (
	TypeSick          = "SICK"
	TypePersonal      = "PERSONAL"
	TypeVacation      = "VACATION"
	TypeMaternity     = "MATERNITY"
	TypePaternity     = "PATERNITY"
	TypeOrdination    = "ORDINATION"
	TypeMilitary      = "MILITARY"
	TypeSterilization = "STERILIZATION"
	TypeTraining      = "TRAINING"
	TypeFuneral       = "FUNERAL"
	TypeUnpaid        = "UNPAID"
)

type typeInfo struct {
	BalanceKey string
	LabelTH    string
}

var leaveTypes = map[string]typeInfo{
	TypeSick:          {BalanceKey: user.BalanceSick, LabelTH: "ลาป่วย"},
	TypePersonal:      {BalanceKey: user.BalancePersonal, LabelTH: "ลากิจส่วนตัว"},
	TypeVacation:      {BalanceKey: user.BalanceVacation, LabelTH: "ลาพักร้อน"},
	TypeMaternity:     {BalanceKey: user.BalanceMaternity, LabelTH: "ลาคลอดบุตร"},
	TypePaternity:     {BalanceKey: user.BalancePaternity, LabelTH: "ลาไปช่วยเหลือภริยาที่คลอดบุตร"},
	TypeOrdination:    {BalanceKey: user.BalanceOrdination, LabelTH: "ลาอุปสมบท"},
	TypeMilitary:      {BalanceKey: user.BalanceMilitary, LabelTH: "ลาเข้ารับการตรวจเลือกทหาร"},
	TypeSterilization: {BalanceKey: user.BalanceSterilization, LabelTH: "ลาทำหมัน"},
	TypeTraining:      {BalanceKey: user.BalanceTraining, LabelTH: "ลาฝึกอบรม"},
	TypeFuneral:       {BalanceKey: user.BalanceFuneral, LabelTH: "ลาไปงานศพ"},
	TypeUnpaid:        {BalanceKey: user.BalanceUnpaid, LabelTH: "ลาโดยไม่รับค่าจ้าง"},
}

// BalanceKey resolves the balance counter a leave type draws from. The bool
// is false for unmapped types; callers must treat that as a hard error, never
// a silent skip.
func BalanceKey(leaveType string) (string, bool) {
	info, ok := leaveTypes[leaveType]
	return info.BalanceKey, ok
}

// TypeLabelTH returns the Thai display label for a leave type, falling back
// to the raw value for unknown types.
func TypeLabelTH(leaveType string) string {
	if info, ok := leaveTypes[leaveType]; ok {
		return info.LabelTH
	}
	return leaveType
}

// IsValidType reports whether the leave type is part of the enumeration.
func IsValidType(leaveType string) bool {
	_, ok := leaveTypes[leaveType]
	return ok
}

// StatusLabelTH returns the Thai display label for a request status.
func StatusLabelTH(status string) string {
	switch status {
	case StatusPending:
		return "รออนุมัติ"
	case StatusApproved:
		return "อนุมัติ"
	case StatusRejected:
		return "ไม่อนุมัติ"
	default:
		return status
	}
}
