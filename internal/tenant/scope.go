package tenant

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const Column = "company_id"

// Scope restricts a query to one company's rows. The column is qualified
// with the current table so joins stay unambiguous.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: Column},
			Value:  companyID,
		})
	}
}
