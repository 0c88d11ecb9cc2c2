// Package entity defines the domain entities for the users feature.
package entity

import "time"

// User は登録済みユーザーを表します。
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the display name entered on the sign-up form.
	Name string `gorm:"size:255;not null"`

	// Email must be unique across all users. It is stored lower-cased.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash; plaintext is never stored.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
