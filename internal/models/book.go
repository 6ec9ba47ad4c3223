package models

import "gorm.io/gorm"

// Book represents a book in the catalog. PdfURL and CoverImage are references
// into the blob store; they are nil until a corresponding file is uploaded.
type Book struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"` // Free-text author name, not a foreign key
	Description string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    string  `json:"category" validate:"required"`
	PdfURL      *string `json:"pdfUrl" gorm:"column:pdf_url"`
	CoverImage  *string `json:"coverImage" gorm:"column:cover_image"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// BookUpdate is a partial update for a Book. A nil pointer means the stored
// value is left untouched; in particular an update without a pdf or cover
// upload must keep the existing references.
type BookUpdate struct {
	Title       *string
	Author      *string
	Description *string
	Category    *string
	PdfURL      *string
	CoverImage  *string
}

// Fields returns only the columns that are actually being changed.
func (u BookUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Author != nil {
		fields["author"] = *u.Author
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Category != nil {
		fields["category"] = *u.Category
	}
	if u.PdfURL != nil {
		fields["pdf_url"] = *u.PdfURL
	}
	if u.CoverImage != nil {
		fields["cover_image"] = *u.CoverImage
	}
	return fields
}
