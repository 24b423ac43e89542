package interfaces

import (
	"time"

	"cyberassess/internal/models"
)

// ResultStore persists assessment results on behalf of the calling layer.
// The engine itself never touches storage; callers save each result keyed
// by a session identifier, paired with the time it was produced.
type ResultStore interface {
	Save(sessionID string, result *models.AssessmentResult, timestamp time.Time) error
	Load(sessionID string) (*models.AssessmentResult, time.Time, error)
	Clear(sessionID string) error
	Sessions() ([]string, error)
	Backup() error
	Close() error
}
