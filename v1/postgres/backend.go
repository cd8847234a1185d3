package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Aleph-Alpha/jsondb/v1/collection"
)

var _ collection.Backend = (*Postgres)(nil)

func (p *Postgres) Load(ctx context.Context, name string) ([]collection.Document, error) {
	db := p.DB().WithContext(ctx)

	var record collectionRecord
	if err := db.Where("name = ?", name).First(&record).Error; err != nil {
		if errors.Is(TranslateError(err), ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", collection.ErrCollectionNotFound, name)
		}
		return nil, TranslateError(err)
	}

	var records []documentRecord
	if err := db.Where("collection = ?", name).Order("position").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", name, TranslateError(err))
	}

	docs := make([]collection.Document, len(records))
	for i, r := range records {
		docs[i] = collection.Document{ID: r.ID, Body: []byte(r.Body)}
	}
	return docs, nil
}

// Save replaces the documents of a collection in one transaction.
func (p *Postgres) Save(ctx context.Context, name string, docs []collection.Document) error {
	if err := collection.ValidateName(name); err != nil {
		return err
	}

	records := make([]documentRecord, len(docs))
	for i, d := range docs {
		records[i] = documentRecord{Collection: name, ID: d.ID, Position: i, Body: string(d.Body)}
	}

	err := p.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&collectionRecord{Name: name, CreatedAt: time.Now().UTC()}).Error; err != nil {
			return err
		}
		if err := tx.Where("collection = ?", name).Delete(&documentRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, p.cfg.batchSize()).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", name, err)
	}
	return nil
}

func (p *Postgres) Drop(ctx context.Context, name string) error {
	var affected int64
	err := p.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("collection = ?", name).Delete(&documentRecord{}).Error; err != nil {
			return err
		}
		res := tx.Where("name = ?", name).Delete(&collectionRecord{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("failed to drop collection %s: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", collection.ErrCollectionNotFound, name)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]string, error) {
	var names []string
	if err := p.DB().WithContext(ctx).Model(&collectionRecord{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", TranslateError(err))
	}
	return names, nil
}
