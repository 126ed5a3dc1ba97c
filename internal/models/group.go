package models

// Group is a named category posts can be filed under
type Group struct {
	ID          int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Title       string `gorm:"type:varchar(200);not null;column:title" json:"title"`
	Slug        string `gorm:"type:varchar(100);not null;uniqueIndex:postline_groups_ux1;column:slug" json:"slug"`
	Description string `gorm:"type:text;not null;default:'';column:description" json:"description"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "postline_groups"
}
