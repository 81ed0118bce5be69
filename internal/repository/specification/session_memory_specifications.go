package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters session memories by their primary key.
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByUserState filters session memories by classified emotional state.
type ByUserState struct {
	UserState string
}

func (s ByUserState) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_state = ?", s.UserState)
}

// MinRating keeps only sessions rated at or above the threshold.
type MinRating struct {
	Rating int
}

func (s MinRating) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rating >= ?", s.Rating)
}
