package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Transaction runs fn in a database transaction. The transaction is rolled
// back when fn returns an error and committed otherwise.
//
// Example usage:
//
//	err := pg.Transaction(ctx, func(tx *gorm.DB) error {
//		return tx.Create(&record).Error
//	})
func (p *Postgres) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return TranslateError(p.DB().WithContext(ctx).Transaction(fn))
}
