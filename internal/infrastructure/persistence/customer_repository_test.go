package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/business"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCustomer(t *testing.T, repo *GormCustomerRepository, businessID uuid.UUID, name string) *business.Customer {
	t.Helper()
	customer, err := business.NewCustomer(businessID, name)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), customer))
	return customer
}

func TestGormCustomerRepository_SaveAndFindByID(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))
	businessID := uuid.New()

	customer := createTestCustomer(t, repo, businessID, "Acme Corp")

	found, err := repo.FindByID(context.Background(), customer.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.ID)
	assert.Equal(t, businessID, found.BusinessID)
	assert.Equal(t, "Acme Corp", found.Name)
}

func TestGormCustomerRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCustomerRepository_Save_Update(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))
	customer := createTestCustomer(t, repo, uuid.New(), "Old Name")

	require.NoError(t, customer.Update("New Name"))
	require.NoError(t, customer.SetContact("billing@acme.test", "+1 555 0100"))
	require.NoError(t, repo.Save(context.Background(), customer))

	found, err := repo.FindByID(context.Background(), customer.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "New Name", found.Name)
	assert.Equal(t, "billing@acme.test", found.Email)
	assert.Equal(t, "+1 555 0100", found.Phone)
}

func TestGormCustomerRepository_FindByID_ScopeFiltersOtherBusinesses(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))
	inScope := uuid.New()
	outOfScope := uuid.New()

	visible := createTestCustomer(t, repo, inScope, "Visible")
	hidden := createTestCustomer(t, repo, outOfScope, "Hidden")

	scope := &access.ScopeFilter{PartnerID: uuid.New(), BusinessIDs: []uuid.UUID{inScope}}

	found, err := repo.FindByID(context.Background(), visible.ID, scope)
	require.NoError(t, err)
	assert.Equal(t, visible.ID, found.ID)

	_, err = repo.FindByID(context.Background(), hidden.ID, scope)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCustomerRepository_FindByID_EmptyScopeMatchesNothing(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))
	customer := createTestCustomer(t, repo, uuid.New(), "Acme Corp")

	scope := &access.ScopeFilter{PartnerID: uuid.New(), BusinessIDs: []uuid.UUID{}}

	_, err := repo.FindByID(context.Background(), customer.ID, scope)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCustomerRepository_FindAll_ScopeRestrictsRows(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	createTestCustomer(t, repo, first, "Customer A")
	createTestCustomer(t, repo, second, "Customer B")
	createTestCustomer(t, repo, third, "Customer C")

	scope := &access.ScopeFilter{PartnerID: uuid.New(), BusinessIDs: []uuid.UUID{first, second}}

	customers, total, err := repo.FindAll(context.Background(), shared.DefaultFilter(), scope)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, customers, 2)
	for _, c := range customers {
		assert.Contains(t, []uuid.UUID{first, second}, c.BusinessID)
	}
}

func TestGormCustomerRepository_FindAll_EmptyScopeReturnsNothing(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))
	createTestCustomer(t, repo, uuid.New(), "Customer A")

	scope := &access.ScopeFilter{PartnerID: uuid.New(), BusinessIDs: nil}

	customers, total, err := repo.FindAll(context.Background(), shared.DefaultFilter(), scope)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, customers)
}

func TestGormCustomerRepository_FindAll_Pagination(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))
	businessID := uuid.New()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		customer, err := business.NewCustomer(businessID, "Customer "+string(rune('A'+i)))
		require.NoError(t, err)
		customer.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Save(context.Background(), customer))
	}

	filter := shared.Filter{Page: 2, PageSize: 2, OrderBy: "created_at", OrderDir: "asc"}
	customers, total, err := repo.FindAll(context.Background(), filter, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, customers, 2)
	assert.Equal(t, "Customer C", customers[0].Name)
	assert.Equal(t, "Customer D", customers[1].Name)
}

func TestGormCustomerRepository_FindAll_RejectsUnknownSortField(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))
	createTestCustomer(t, repo, uuid.New(), "Acme Corp")

	filter := shared.Filter{Page: 1, PageSize: 10, OrderBy: "password; DROP TABLE customers", OrderDir: "asc"}
	customers, total, err := repo.FindAll(context.Background(), filter, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, customers, 1)
}

func TestGormCustomerRepository_SoftDelete_HidesRow(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))
	customer := createTestCustomer(t, repo, uuid.New(), "Acme Corp")

	require.NoError(t, repo.SoftDelete(context.Background(), customer.ID))

	_, err := repo.FindByID(context.Background(), customer.ID, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, total, err := repo.FindAll(context.Background(), shared.DefaultFilter(), nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGormCustomerRepository_SoftDelete_NotFound(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))

	err := repo.SoftDelete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCustomerRepository_SoftDelete_AlreadyDeleted(t *testing.T) {
	repo := NewGormCustomerRepository(setupTestDB(t))
	customer := createTestCustomer(t, repo, uuid.New(), "Acme Corp")

	require.NoError(t, repo.SoftDelete(context.Background(), customer.ID))
	err := repo.SoftDelete(context.Background(), customer.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCustomerRepository_Delete_RemovesRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	customer := createTestCustomer(t, repo, uuid.New(), "Acme Corp")

	require.NoError(t, repo.SoftDelete(context.Background(), customer.ID))
	require.NoError(t, repo.Delete(context.Background(), customer.ID))

	var count int64
	require.NoError(t, db.Table("customers").Where("id = ?", customer.ID).Count(&count).Error)
	assert.Zero(t, count)
}
