package leave_test

import (
	"testing"

	"github.com/servicein2it/leave-in2it-sub000/internal/leave"
	"github.com/servicein2it/leave-in2it-sub000/internal/user"

	"github.com/stretchr/testify/assert"
)

func TestBalanceKey(t *testing.T) {
	key, ok := leave.BalanceKey(leave.TypeSick)
	assert.True(t, ok)
	assert.Equal(t, user.BalanceSick, key)

	key, ok = leave.BalanceKey(leave.TypeUnpaid)
	assert.True(t, ok)
	assert.Equal(t, user.BalanceUnpaid, key)

	_, ok = leave.BalanceKey("SABBATICAL")
	assert.False(t, ok)
}

func TestEveryTypeMapsToACounter(t *testing.T) {
	types := []string{
		leave.TypeSick, leave.TypePersonal, leave.TypeVacation,
		leave.TypeMaternity, leave.TypePaternity, leave.TypeOrdination,
		leave.TypeMilitary, leave.TypeSterilization, leave.TypeTraining,
		leave.TypeFuneral, leave.TypeUnpaid,
	}

	balances := user.DefaultLeaveBalances()
	for _, leaveType := range types {
		assert.True(t, leave.IsValidType(leaveType), leaveType)

		key, ok := leave.BalanceKey(leaveType)
		assert.True(t, ok, leaveType)

		counter, ok := balances.Counter(key)
		assert.True(t, ok, key)
		assert.NotNil(t, counter, key)
	}
}

func TestTypeLabelTH(t *testing.T) {
	assert.Equal(t, "ลาป่วย", leave.TypeLabelTH(leave.TypeSick))
	assert.Equal(t, "ลาพักร้อน", leave.TypeLabelTH(leave.TypeVacation))
	// Unknown types fall back to the raw value.
	assert.Equal(t, "SABBATICAL", leave.TypeLabelTH("SABBATICAL"))
}

func TestStatusLabelTH(t *testing.T) {
	assert.Equal(t, "รออนุมัติ", leave.StatusLabelTH(leave.StatusPending))
	assert.Equal(t, "อนุมัติ", leave.StatusLabelTH(leave.StatusApproved))
	assert.Equal(t, "ไม่อนุมัติ", leave.StatusLabelTH(leave.StatusRejected))
}
