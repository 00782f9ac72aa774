package models

// Role represents an assignable user role (e.g. "user", "admin")
type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:30;not null"`
}
