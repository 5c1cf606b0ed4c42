// Package model contains the GORM-specific persistence structs.
package model

import "time"

// BlobModel is the GORM struct for the 'blobs' table: one row per storage
// key, holding the latest serialized snapshot for that key.
type BlobModel struct {
	Key       string `gorm:"primaryKey;type:text"`
	Value     []byte `gorm:"type:blob;not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (BlobModel) TableName() string {
	return "blobs"
}
