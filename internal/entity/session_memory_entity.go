package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionMemory is the durable record of one ritual session. It is written
// once when the ritual is created (Rating 0 = unset) and updated exactly once
// when feedback arrives. This row, not the in-memory serving session, is the
// source of truth.
type SessionMemory struct {
	SessionId   uuid.UUID
	UserInput   string
	UserState   string
	RitualSteps []string // step types in ritual order
	Rating      int
	Timestamp   time.Time
}

// SimilarSession is a past session returned by similarity search, used to
// bias step selection toward historically well-rated content.
type SimilarSession struct {
	SessionId   uuid.UUID
	Score       float64
	UserState   string
	RitualSteps []string
	Rating      int
}
