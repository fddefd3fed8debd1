package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrder_Creation(t *testing.T) {
	createdAt := time.Now()
	updatedAt := time.Now()

	order := Order{
		ID:           1,
		CustomerName: "John Doe",
		PartNumber:   "BRK-2210",
		Technician:   "M. Reyes",
		Store:        "Downtown",
		Status:       StatusNeedToOrder,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}

	assert.Equal(t, uint(1), order.ID)
	assert.Equal(t, "John Doe", order.CustomerName)
	assert.Equal(t, "BRK-2210", order.PartNumber)
	assert.Equal(t, StatusNeedToOrder, order.Status)
	assert.Nil(t, order.CancellationReason)
	assert.Equal(t, createdAt, order.CreatedAt)
	assert.Equal(t, updatedAt, order.UpdatedAt)
}

func TestOrder_CancellationReason(t *testing.T) {
	reason := "customer changed their mind"
	order := Order{
		ID:                 2,
		Status:             StatusCancelled,
		CancellationReason: &reason,
	}

	assert.Equal(t, StatusCancelled, order.Status)
	assert.Equal(t, &reason, order.CancellationReason)
}

func TestStatus_Valid(t *testing.T) {
	valid := []Status{
		StatusNeedToOrder, StatusOrdered, StatusReceived, StatusCompleted,
		StatusOutOfStock, StatusDistro, StatusReturnRequired, StatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	assert.False(t, Status("shipped").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())

	assert.False(t, StatusNeedToOrder.Terminal())
	assert.False(t, StatusOrdered.Terminal())
	assert.False(t, StatusReceived.Terminal())
	assert.False(t, StatusOutOfStock.Terminal())
	assert.False(t, StatusDistro.Terminal())
	assert.False(t, StatusReturnRequired.Terminal())
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("employee")
	assert.True(t, ok)
	assert.Equal(t, RoleEmployee, role)

	role, ok = ParseRole("manager")
	assert.True(t, ok)
	assert.Equal(t, RoleManager, role)

	role, ok = ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}
