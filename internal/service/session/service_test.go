package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sessionmodel "github.com/wanyue/mindgarden/backend/internal/model/session"
	sessionservice "github.com/wanyue/mindgarden/backend/internal/service/session"
)

func newTestService(t *testing.T) *sessionservice.Service {
	t.Helper()
	svc, err := sessionservice.NewService(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}
	return svc
}

func TestCreateAndGetRecord(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, sessionservice.CreateParams{
		UserID:          "default_user",
		VoicePersona:    "calm_female",
		SessionType:     "guided_breathing",
		DurationMinutes: 15,
		AmbientCategory: "nature_sounds",
	})
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if record.ID == "" {
		t.Fatal("expected generated session ID")
	}
	if record.Status != sessionmodel.StatusActive {
		t.Fatalf("expected active status, got %s", record.Status)
	}

	got, err := svc.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.VoicePersona != "calm_female" || got.SessionType != "guided_breathing" {
		t.Fatalf("unexpected record: %#v", got)
	}
}

func TestGetUnknownRecord(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, sessionservice.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompleteStoresFinalStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, sessionservice.CreateParams{
		UserID:       "default_user",
		VoicePersona: "calm_female",
		SessionType:  "guided_breathing",
	})
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	checkIn := time.Now().UTC().Truncate(time.Second)
	if err := svc.Complete(ctx, record.ID, 7, checkIn); err != nil {
		t.Fatalf("Complete err: %v", err)
	}

	got, err := svc.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.Status != sessionmodel.StatusCompleted {
		t.Fatalf("expected completed status, got %s", got.Status)
	}
	if got.Interactions != 7 {
		t.Fatalf("expected 7 interactions, got %d", got.Interactions)
	}
}

func TestCompleteUnknownRecordIsNoop(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Complete(context.Background(), "missing", 1, time.Now()); err != nil {
		t.Fatalf("Complete on unknown ID must be a no-op, got %v", err)
	}
}
