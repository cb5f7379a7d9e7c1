// internal/models/cart_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartLineKey(t *testing.T) {
	plain := CartLineKey(7, nil)
	printed := CartLineKey(7, &Customization{Type: CustomizationTypePrint, Text: "ZIP", Price: 20000})
	embroidered := CartLineKey(7, &Customization{Type: CustomizationTypeEmbroidery, Text: "ZIP", Price: 50000})

	assert.Equal(t, "7", plain)
	assert.NotEqual(t, plain, printed)
	assert.NotEqual(t, printed, embroidered)

	// Identical customizations serialize identically.
	again := CartLineKey(7, &Customization{Type: CustomizationTypePrint, Text: "ZIP", Price: 20000})
	assert.Equal(t, printed, again)
}

func TestCartRecordRoundTrip(t *testing.T) {
	items := []CartItem{
		{ProductID: 1, Name: "Áo thun", Price: "100.000đ", Quantity: 2},
		{ProductID: 2, Name: "Áo sơ mi", Price: "250.000đ", Quantity: 1,
			Custom: &Customization{Type: CustomizationTypePrint, Text: "ZIP", Price: 20000}},
	}

	var record CartRecord
	require.NoError(t, record.SetItems(items))

	decoded, err := record.Items()
	require.NoError(t, err)
	assert.Equal(t, items, decoded)
}

func TestCartRecordCorruptPayload(t *testing.T) {
	record := CartRecord{Payload: `{"not":"an array"`}
	_, err := record.Items()
	assert.Error(t, err)
}

func TestCartRecordEmptyPayload(t *testing.T) {
	var record CartRecord
	items, err := record.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPaymentStatusTerminal(t *testing.T) {
	assert.False(t, PaymentStatusPending.Terminal())
	assert.False(t, PaymentStatusProcessing.Terminal())
	assert.True(t, PaymentStatusCompleted.Terminal())
	assert.True(t, PaymentStatusFailed.Terminal())
	assert.True(t, PaymentStatusCancelled.Terminal())
	// Unknown statuses from the gateway are treated as terminal failures.
	assert.True(t, PaymentStatus("EXPIRED").Terminal())
}
