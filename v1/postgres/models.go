package postgres

import "time"

// collectionRecord marks a collection as existing, including empty ones.
type collectionRecord struct {
	Name      string           `gorm:"primaryKey;size:255"`
	CreatedAt time.Time        `gorm:"not null"`
	Documents []documentRecord `gorm:"foreignKey:Collection;references:Name;constraint:OnDelete:CASCADE"`
}

func (collectionRecord) TableName() string { return "jsondb_collections" }

// documentRecord is one document; Position keeps insertion order.
type documentRecord struct {
	Collection string `gorm:"primaryKey;size:255"`
	ID         string `gorm:"primaryKey;column:id;size:255"`
	Position   int    `gorm:"not null;index:idx_jsondb_documents_position"`
	Body       string `gorm:"type:jsonb;not null"`
}

func (documentRecord) TableName() string { return "jsondb_documents" }
