// Package store is the bbolt-backed implementation of the caller-side
// result persistence interface.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cyberassess/internal/common"
	"cyberassess/internal/interfaces"
	"cyberassess/internal/models"

	"github.com/ternarybob/arbor"
	bolt "go.etcd.io/bbolt"
)

const (
	resultsBucket  = "results"
	metadataBucket = "metadata"
)

// ErrNotFound is returned by Load when a session has no stored result.
var ErrNotFound = errors.New("no stored assessment for session")

type Store struct {
	db     *bolt.DB
	config *common.StorageConfig
	logger arbor.ILogger
}

var _ interfaces.ResultStore = (*Store)(nil)

func New(config *common.StorageConfig, logger arbor.ILogger) (*Store, error) {
	dbDir := filepath.Dir(config.DatabasePath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if config.BackupDir != "" {
		if err := os.MkdirAll(config.BackupDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create backup directory: %w", err)
		}
	}

	db, err := bolt.Open(config.DatabasePath, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(resultsBucket)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(metadataBucket)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &Store{
		db:     db,
		config: config,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores a result under the session id, replacing any previous result
// for that session, and records the timestamp it was produced at.
func (s *Store) Save(sessionID string, result *models.AssessmentResult, timestamp time.Time) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment result: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(resultsBucket)).Put([]byte(sessionID), data); err != nil {
			return err
		}
		return tx.Bucket([]byte(metadataBucket)).Put(
			[]byte(sessionID), []byte(timestamp.Format(time.RFC3339Nano)))
	})
	if err != nil {
		return fmt.Errorf("failed to save assessment result: %w", err)
	}

	s.logger.Debug().
		Str("session", sessionID).
		Int("flagged", len(result.FlaggedIssues)).
		Msg("Assessment result saved")
	return nil
}

// Load retrieves the stored result and its timestamp for a session.
// Returns ErrNotFound when none exists.
func (s *Store) Load(sessionID string) (*models.AssessmentResult, time.Time, error) {
	var result models.AssessmentResult
	var timestamp time.Time

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(resultsBucket)).Get([]byte(sessionID))
		if data == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(data, &result); err != nil {
			return fmt.Errorf("failed to unmarshal assessment result: %w", err)
		}

		if raw := tx.Bucket([]byte(metadataBucket)).Get([]byte(sessionID)); raw != nil {
			parsed, err := time.Parse(time.RFC3339Nano, string(raw))
			if err != nil {
				return fmt.Errorf("failed to parse stored timestamp: %w", err)
			}
			timestamp = parsed
		}
		return nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}

	return &result, timestamp, nil
}

// Clear removes the stored result and timestamp for a session. Clearing a
// session that has nothing stored is not an error.
func (s *Store) Clear(sessionID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(resultsBucket)).Delete([]byte(sessionID)); err != nil {
			return err
		}
		return tx.Bucket([]byte(metadataBucket)).Delete([]byte(sessionID))
	})
}

// Sessions lists every session id with a stored result.
func (s *Store) Sessions() ([]string, error) {
	var sessions []string

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(resultsBucket)).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			sessions = append(sessions, string(k))
		}
		return nil
	})

	return sessions, err
}

// Backup copies the database into the configured backup directory with a
// timestamped name. A store without a backup directory skips silently.
func (s *Store) Backup() error {
	if s.config.BackupDir == "" {
		return nil
	}

	timestamp := time.Now().Format("20060102_150405")
	backupPath := filepath.Join(s.config.BackupDir, fmt.Sprintf("assessments_%s.db", timestamp))

	return s.db.View(func(tx *bolt.Tx) error {
		return tx.CopyFile(backupPath, 0600)
	})
}
