package models

import "gorm.io/gorm"

// Author represents an author profile in the catalog.
type Author struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string  `json:"name" validate:"required"`
	Biography  string  `json:"biography,omitempty" validate:"omitempty,max=5000"`
	PhotoURL   *string `json:"photoUrl" gorm:"column:photo_url"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// AuthorUpdate is a partial update for an Author. A nil pointer means the
// stored value is left untouched.
type AuthorUpdate struct {
	Name      *string
	Biography *string
	PhotoURL  *string
}

// Fields returns only the columns that are actually being changed.
func (u AuthorUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Biography != nil {
		fields["biography"] = *u.Biography
	}
	if u.PhotoURL != nil {
		fields["photo_url"] = *u.PhotoURL
	}
	return fields
}
