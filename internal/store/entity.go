package store

import "time"

// Calculation is a persisted calculation. The operation name lives in the
// "type" column.
type Calculation struct {
	ID        uint      `gorm:"primarykey"`
	Type      string    `gorm:"column:type;size:16;not null;index"`
	A         float64   `gorm:"not null"`
	B         float64   `gorm:"not null"`
	Result    *float64
	UserID    *uint     `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for Calculation.
func (Calculation) TableName() string {
	return "calculations"
}

// User is an account allowed to read reports.
type User struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}
