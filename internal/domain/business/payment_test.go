package business

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(uuid.New(), uuid.New(), decimal.NewFromInt(100), "USD")
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	p := newTestPayment(t)
	assert.Equal(t, PaymentStatusPending, p.Status)
	assert.Nil(t, p.PaidAt)
}

func TestNewPayment_Invalid(t *testing.T) {
	_, err := NewPayment(uuid.Nil, uuid.New(), decimal.NewFromInt(100), "USD")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.Nil, decimal.NewFromInt(100), "USD")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.New(), decimal.Zero, "USD")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.New(), decimal.NewFromInt(-5), "USD")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.New(), decimal.NewFromInt(100), "US")
	assert.Error(t, err)
}

func TestPayment_MarkPaid(t *testing.T) {
	p := newTestPayment(t)

	require.NoError(t, p.MarkPaid())
	assert.Equal(t, PaymentStatusPaid, p.Status)
	require.NotNil(t, p.PaidAt)

	assert.Error(t, p.MarkPaid())
}

func TestPayment_Refund(t *testing.T) {
	p := newTestPayment(t)

	assert.Error(t, p.Refund())

	require.NoError(t, p.MarkPaid())
	require.NoError(t, p.Refund())
	assert.Equal(t, PaymentStatusRefunded, p.Status)

	assert.Error(t, p.Refund())
}

func TestPayment_MarkFailed(t *testing.T) {
	p := newTestPayment(t)

	require.NoError(t, p.MarkFailed())
	assert.Equal(t, PaymentStatusFailed, p.Status)

	assert.Error(t, p.MarkPaid())
	assert.Error(t, p.MarkFailed())
}

func TestPayment_Snapshot(t *testing.T) {
	p := newTestPayment(t)
	require.NoError(t, p.MarkPaid())

	snapshot := p.Snapshot()
	assert.Equal(t, p.ID.String(), snapshot["id"])
	assert.Equal(t, "100", snapshot["amount"])
	assert.Equal(t, "paid", snapshot["status"])
	assert.Contains(t, snapshot, "paid_at")
}

func TestPaymentStatus_IsValid(t *testing.T) {
	assert.True(t, PaymentStatusPending.IsValid())
	assert.True(t, PaymentStatusRefunded.IsValid())
	assert.False(t, PaymentStatus("chargeback").IsValid())
}
