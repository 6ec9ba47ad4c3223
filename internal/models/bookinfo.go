package models

import "gorm.io/gorm"

// BookInfo is the legacy catalog schema kept for older data. It stores a bare
// filename instead of a blob reference and is migrated but not routed.
type BookInfo struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title      string `json:"title" validate:"required"`
	Author     string `json:"author" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Pdf        string `json:"pdf" validate:"required"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// TableName keeps the table name of the legacy collection.
func (BookInfo) TableName() string {
	return "BookDetails"
}
