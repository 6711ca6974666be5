package models

// Tag names are stored trimmed and lowercased. Tags are shared across tasks
// and are never deleted, even when the last task referencing them goes away.
type Tag struct {
	ID   uint   `json:"id" gorm:"primarykey"`
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}
