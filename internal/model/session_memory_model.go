package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type SessionMemory struct {
	SessionId uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserInput string         `gorm:"type:text;not null"`
	UserState string         `gorm:"type:text;not null;index"`
	// Step types in ritual order, e.g. ["breathing","journaling",...]
	RitualSteps datatypes.JSON `gorm:"type:jsonb;not null"`
	Rating      int            `gorm:"default:0;index"`
	// Filled asynchronously by the embedding consumer; rows with a NULL
	// embedding are invisible to similarity search.
	Embedding *pgvector.Vector `gorm:"type:vector(768)"`
	Timestamp time.Time        `gorm:"autoCreateTime"`
}

func (SessionMemory) TableName() string {
	return "session_memories"
}
