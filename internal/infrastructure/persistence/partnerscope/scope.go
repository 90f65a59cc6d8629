// Package partnerscope translates access decisions into GORM query
// predicates.
//
// A scoped decision carries the set of business IDs a partner may see.
// Apply intersects that set into a query so scoped listings return only
// in-scope rows and scoped point reads report out-of-scope rows as
// not-found.
package partnerscope

import (
	"github.com/bizdesk/backend/internal/domain/access"
	"gorm.io/gorm"
)

// Apply intersects a scope filter into a query over a business-owned
// table. A nil filter means unscoped access and leaves the query
// untouched. An empty business set matches nothing: zero access is
// expressed as a contradiction, never as an unfiltered query.
func Apply(db *gorm.DB, scope *access.ScopeFilter) *gorm.DB {
	if scope == nil {
		return db
	}
	if len(scope.BusinessIDs) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where("business_id IN ?", scope.BusinessIDs)
}

// ApplyToColumn is Apply for tables where the owning business column
// has a non-default name.
func ApplyToColumn(db *gorm.DB, scope *access.ScopeFilter, column string) *gorm.DB {
	if scope == nil {
		return db
	}
	if len(scope.BusinessIDs) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where(column+" IN ?", scope.BusinessIDs)
}
