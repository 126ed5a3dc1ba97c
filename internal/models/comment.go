package models

import (
	"time"
)

// Comment is a reply attached to a single post.
// AuthorID carries the post author's id, not the submitter's; comment
// attribution follows the post owner.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PostID    int64     `gorm:"not null;index:postline_comments_ix_post;column:post_id" json:"post_id"`
	AuthorID  int64     `gorm:"not null;column:author_id" json:"-"`
	Text      string    `gorm:"type:text;not null;column:text" json:"text"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`

	// Relationships
	Post   *Post `gorm:"foreignKey:PostID;references:ID" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "postline_comments"
}
