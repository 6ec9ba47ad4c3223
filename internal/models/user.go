package models

import "gorm.io/gorm"

// User represents a library account. Accounts are provisioned implicitly on
// the first login attempt with an unknown username.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required"` // No json tag value for security
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// UserUpdate is a partial update for a User. A nil pointer means the stored
// value is left untouched.
type UserUpdate struct {
	Username *string
	Password *string
}

// Fields returns only the columns that are actually being changed.
func (u UserUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Username != nil {
		fields["username"] = *u.Username
	}
	if u.Password != nil {
		fields["password"] = *u.Password
	}
	return fields
}
