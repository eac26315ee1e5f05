package session

import "time"

// Status 表示一次冥想会话记录的生命周期状态。
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// Record is the persisted metadata for one meditation session.
type Record struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"index" json:"userId"`
	VoicePersona    string    `json:"voicePersona"`
	SessionType     string    `json:"sessionType"`
	DurationMinutes int       `json:"durationMinutes"`
	AmbientCategory string    `json:"ambientCategory,omitempty"`
	Status          string    `json:"status"`
	Interactions    int       `json:"interactions"`
	LastCheckIn     time.Time `json:"lastCheckIn"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
