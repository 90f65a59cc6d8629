package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("ascending; DROP TABLE users"))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "name", ValidateSortField("name", CustomerSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", CustomerSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("secret_column", CustomerSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("name; DELETE FROM customers", CustomerSortFields, "created_at"))
}
