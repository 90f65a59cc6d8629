package business

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBudget(t *testing.T) {
	b, err := NewBudget(uuid.New(), "Marketing", "2026-Q3", decimal.NewFromInt(5000))
	require.NoError(t, err)
	assert.Equal(t, "Marketing", b.Name)
	assert.Equal(t, "2026-Q3", b.Period)
	assert.True(t, b.Spent.IsZero())
}

func TestNewBudget_Invalid(t *testing.T) {
	_, err := NewBudget(uuid.Nil, "Marketing", "2026-Q3", decimal.NewFromInt(5000))
	assert.Error(t, err)

	_, err = NewBudget(uuid.New(), "  ", "2026-Q3", decimal.NewFromInt(5000))
	assert.Error(t, err)

	_, err = NewBudget(uuid.New(), "Marketing", "", decimal.NewFromInt(5000))
	assert.Error(t, err)

	_, err = NewBudget(uuid.New(), "Marketing", "2026-Q3", decimal.Zero)
	assert.Error(t, err)
}

func TestBudget_RecordSpendAndRemaining(t *testing.T) {
	b, err := NewBudget(uuid.New(), "Marketing", "2026-Q3", decimal.NewFromInt(5000))
	require.NoError(t, err)

	require.NoError(t, b.RecordSpend(decimal.NewFromInt(1200)))
	require.NoError(t, b.RecordSpend(decimal.NewFromFloat(300.50)))

	assert.True(t, b.Spent.Equal(decimal.NewFromFloat(1500.50)))
	assert.True(t, b.Remaining().Equal(decimal.NewFromFloat(3499.50)))

	assert.Error(t, b.RecordSpend(decimal.Zero))
	assert.Error(t, b.RecordSpend(decimal.NewFromInt(-10)))
}

func TestBudget_Update(t *testing.T) {
	b, err := NewBudget(uuid.New(), "Marketing", "2026-Q3", decimal.NewFromInt(5000))
	require.NoError(t, err)

	require.NoError(t, b.Update("Marketing EMEA", decimal.NewFromInt(8000)))
	assert.Equal(t, "Marketing EMEA", b.Name)
	assert.True(t, b.Amount.Equal(decimal.NewFromInt(8000)))

	assert.Error(t, b.Update("", decimal.NewFromInt(8000)))
	assert.Error(t, b.Update("Marketing", decimal.NewFromInt(-1)))
}

func TestBudget_Snapshot(t *testing.T) {
	b, err := NewBudget(uuid.New(), "Marketing", "2026-Q3", decimal.NewFromInt(5000))
	require.NoError(t, err)
	require.NoError(t, b.RecordSpend(decimal.NewFromInt(100)))

	snapshot := b.Snapshot()
	assert.Equal(t, b.BusinessID.String(), snapshot["business_id"])
	assert.Equal(t, "2026-Q3", snapshot["period"])
	assert.Equal(t, "5000", snapshot["amount"])
	assert.Equal(t, "100", snapshot["spent"])
}
