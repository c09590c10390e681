// internal/domain/order/entity_test.go
package order

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKnownStatus(t *testing.T) {
	for _, status := range KnownStatuses {
		assert.True(t, IsKnownStatus(status), "status %s", status)
	}

	assert.False(t, IsKnownStatus("refunded"))
	assert.False(t, IsKnownStatus(""))
	assert.False(t, IsKnownStatus("PENDING"))
}

func TestShippingAddressMissingFields(t *testing.T) {
	complete := ShippingAddress{
		FirstName: "Jordan",
		LastName:  "Lee",
		Address:   "123 Main St",
		City:      "Austin",
		State:     "TX",
		ZipCode:   "78701",
		Country:   "USA",
		Phone:     "+15125551234",
	}
	assert.Empty(t, complete.MissingFields())

	partial := ShippingAddress{
		FirstName: "Jordan",
		City:      "Austin",
	}
	missing := partial.MissingFields()
	assert.Contains(t, missing, "last_name")
	assert.Contains(t, missing, "address")
	assert.Contains(t, missing, "state")
	assert.Contains(t, missing, "zip_code")
	assert.Contains(t, missing, "country")
	assert.Contains(t, missing, "phone")
	assert.NotContains(t, missing, "first_name")
	assert.NotContains(t, missing, "city")
}

func TestGenerateOrderNumber(t *testing.T) {
	o := &Order{ID: 42}

	expected := fmt.Sprintf("ORD-%s-00042", time.Now().Format("20060102"))
	assert.Equal(t, expected, o.GenerateOrderNumber())
}

func TestOrderJSONCarriesNoPaymentFields(t *testing.T) {
	o := &Order{
		ID:          1,
		OrderNumber: "ORD-20260829-00001",
		Subtotal:    10000,
		Shipping:    0,
		Tax:         800,
		Total:       10800,
	}

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "payment")
}

func TestGetFormattedTotal(t *testing.T) {
	o := &Order{Total: 10800}
	assert.Equal(t, 108.0, o.GetFormattedTotal())
}

func TestAddStatusHistory(t *testing.T) {
	o := &Order{ID: 7, Status: OrderStatusPending}

	o.AddStatusHistory(OrderStatusProcessing, "payment received", 1)

	assert.Len(t, o.StatusHistory, 1)
	entry := o.StatusHistory[0]
	assert.Equal(t, uint(7), entry.OrderID)
	assert.Equal(t, OrderStatusProcessing, entry.Status)
	assert.Equal(t, "payment received", entry.Comment)
	assert.Equal(t, uint(1), entry.CreatedBy)
}
