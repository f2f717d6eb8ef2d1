package model

import "time"

type BaseModel struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NullString maps "" to nil for nullable text columns.
func NullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns "" for a nil pointer.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
