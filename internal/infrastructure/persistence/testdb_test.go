package persistence

import (
	"testing"

	"github.com/bizdesk/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.PartnerModel{},
		&models.BusinessAssignmentModel{},
		&models.ContentGrantModel{},
		&models.BusinessModel{},
		&models.CustomerModel{},
		&models.PaymentModel{},
		&models.WorkflowTemplateModel{},
		&models.BudgetModel{},
		&models.AuditLogModel{},
		&models.DataVersionModel{},
	))

	return db
}
