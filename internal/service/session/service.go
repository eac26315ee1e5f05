// Package session persists meditation session records in sqlite.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	sessionmodel "github.com/wanyue/mindgarden/backend/internal/model/session"
)

// ErrNotFound 表示指定的会话记录不存在。
var ErrNotFound = errors.New("session not found")

// Service stores and retrieves meditation session records.
type Service struct {
	db *gorm.DB
}

// CreateParams carries the client-supplied attributes of a new session.
type CreateParams struct {
	UserID          string
	VoicePersona    string
	SessionType     string
	DurationMinutes int
	AmbientCategory string
}

// NewService opens (or creates) the sqlite database and migrates the schema.
func NewService(dbPath string) (*Service, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&sessionmodel.Record{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	log.Printf("[session] database initialized: %s", dbPath)
	return &Service{db: db}, nil
}

// Create provisions a new active session record.
func (s *Service) Create(ctx context.Context, params CreateParams) (sessionmodel.Record, error) {
	now := time.Now().UTC()
	record := sessionmodel.Record{
		ID:              uuid.NewString(),
		UserID:          params.UserID,
		VoicePersona:    params.VoicePersona,
		SessionType:     params.SessionType,
		DurationMinutes: params.DurationMinutes,
		AmbientCategory: params.AmbientCategory,
		Status:          sessionmodel.StatusActive,
		LastCheckIn:     now,
		CreatedAt:       now,
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return sessionmodel.Record{}, fmt.Errorf("create session record: %w", err)
	}
	return record, nil
}

// Get retrieves a session record by identifier.
func (s *Service) Get(ctx context.Context, id string) (sessionmodel.Record, error) {
	var record sessionmodel.Record
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sessionmodel.Record{}, ErrNotFound
	}
	if err != nil {
		return sessionmodel.Record{}, fmt.Errorf("fetch session record: %w", err)
	}
	return record, nil
}

// Complete marks the record completed and stores the final interaction stats.
// Completing an unknown ID is a no-op.
func (s *Service) Complete(ctx context.Context, id string, interactions int, lastCheckIn time.Time) error {
	result := s.db.WithContext(ctx).Model(&sessionmodel.Record{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        sessionmodel.StatusCompleted,
			"interactions":  interactions,
			"last_check_in": lastCheckIn.UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("complete session record: %w", result.Error)
	}
	return nil
}
