package models

import (
	"database/sql"
	"time"
)

// Post is an authored entry, optionally filed under a group.
// Every post has exactly one author and at most one group.
type Post struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Text      string        `gorm:"type:text;not null;column:text" json:"text"`
	Image     string        `gorm:"type:varchar(1024);not null;default:'';column:image" json:"image,omitempty"`
	CreatedAt time.Time     `gorm:"not null;index:postline_posts_ix_created;column:created_at" json:"created_at"`
	AuthorID  int64         `gorm:"not null;index:postline_posts_ix_author;column:author_id" json:"-"`
	GroupID   sql.NullInt64 `gorm:"index:postline_posts_ix_group;column:group_id" json:"-"`

	// Relationships
	Author *User  `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Group  *Group `gorm:"foreignKey:GroupID;references:ID" json:"group,omitempty"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "postline_posts"
}
