package models

import (
	"time"
)

// User represents a registered author
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username  string    `gorm:"type:varchar(150);not null;uniqueIndex:postline_users_ux1;column:username" json:"username"`
	FirstName string    `gorm:"type:varchar(150);not null;default:'';column:first_name" json:"first_name,omitempty"`
	LastName  string    `gorm:"type:varchar(150);not null;default:'';column:last_name" json:"last_name,omitempty"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "postline_users"
}
