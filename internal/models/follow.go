package models

import (
	"time"
)

// Follow is a directed edge: UserID follows AuthorID.
// The composite primary key keeps the pair unique at the storage layer;
// self edges are rejected above this layer.
type Follow struct {
	UserID    int64     `gorm:"primaryKey;column:user_id" json:"user_id"`
	AuthorID  int64     `gorm:"primaryKey;column:author_id" json:"author_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`

	// Relationships
	User   *User `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID;references:ID" json:"-"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "postline_follows"
}
