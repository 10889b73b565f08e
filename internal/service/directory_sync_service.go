package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wmhn-clinic-api/internal/domain/entity"
	"wmhn-clinic-api/internal/domain/repository"
	"wmhn-clinic-api/internal/infrastructure/messaging"
	"wmhn-clinic-api/internal/infrastructure/monitoring"
	"wmhn-clinic-api/internal/infrastructure/search"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Change event types published after a committed doctor mutation.
const (
	EventDoctorCreated = "doctor.created"
	EventDoctorUpdated = "doctor.updated"
	EventDoctorDeleted = "doctor.deleted"
)

const syncStepTimeout = 5 * time.Second

// DoctorChangeEvent is the message body published for every doctor mutation.
type DoctorChangeEvent struct {
	Type       string    `json:"type"`
	DoctorID   uuid.UUID `json:"doctor_id"`
	Slug       string    `json:"slug"`
	IsActive   bool      `json:"is_active"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DirectorySyncService propagates committed doctor mutations to the public
// directory: the cache is invalidated, the search index is updated and a
// change event is published. Every step is best-effort and logged; the
// mutation itself is never undone.
type DirectorySyncService struct {
	cache    DirectoryCache
	index    search.DoctorIndex
	producer messaging.Producer
	metrics  *monitoring.Metrics
	log      *logrus.Logger
}

// NewDirectorySyncService wires the sync steps. index and producer may be nil
// when search or messaging is not configured.
func NewDirectorySyncService(cache DirectoryCache, index search.DoctorIndex, producer messaging.Producer, metrics *monitoring.Metrics, log *logrus.Logger) *DirectorySyncService {
	return &DirectorySyncService{
		cache:    cache,
		index:    index,
		producer: producer,
		metrics:  metrics,
		log:      log,
	}
}

// DoctorSaved handles a create, full update or visibility toggle.
func (s *DirectorySyncService) DoctorSaved(ctx context.Context, doctor entity.Doctor, created bool) {
	ctx = context.WithoutCancel(ctx)
	s.invalidate(ctx)

	if s.index != nil {
		stepCtx, cancel := context.WithTimeout(ctx, syncStepTimeout)
		if err := s.index.Index(stepCtx, doctor); err != nil {
			s.fail("index", "Failed to index doctor %s: %+v", doctor.ID, err)
		}
		cancel()
	}

	eventType := EventDoctorUpdated
	if created {
		eventType = EventDoctorCreated
	}
	s.publish(ctx, eventType, doctor)
}

// DoctorDeleted handles a permanent delete.
func (s *DirectorySyncService) DoctorDeleted(ctx context.Context, doctor entity.Doctor) {
	ctx = context.WithoutCancel(ctx)
	s.invalidate(ctx)

	if s.index != nil {
		stepCtx, cancel := context.WithTimeout(ctx, syncStepTimeout)
		if err := s.index.Delete(stepCtx, doctor.ID); err != nil {
			s.fail("index", "Failed to remove doctor %s from index: %+v", doctor.ID, err)
		}
		cancel()
	}

	s.publish(ctx, EventDoctorDeleted, doctor)
}

// SyncOnStartup rebuilds the search index from the store and drops any cached
// directory so the first public read comes from the store. Should be called
// before accepting traffic.
func (s *DirectorySyncService) SyncOnStartup(ctx context.Context, repo repository.DoctorRepository) error {
	s.log.Info("Starting directory sync from store...")
	startTime := time.Now()

	s.invalidate(ctx)

	if s.index == nil {
		s.log.Info("Search index not configured, skipping reindex")
		return nil
	}

	if err := s.index.EnsureIndex(ctx); err != nil {
		s.log.Warnf("Failed to prepare search index: %+v", err)
		return err
	}

	doctors, err := repo.FindAll(ctx, entity.DoctorFilter{})
	if err != nil {
		s.log.Warnf("Failed to load doctors for reindex: %+v", err)
		return err
	}

	indexed := 0
	for _, doctor := range doctors {
		if err := s.index.Index(ctx, doctor); err != nil {
			s.fail("index", "Failed to index doctor %s: %+v", doctor.ID, err)
			continue
		}
		indexed++
	}

	s.log.WithFields(logrus.Fields{
		"indexed":  indexed,
		"total":    len(doctors),
		"duration": time.Since(startTime).String(),
	}).Info("Directory sync completed")
	return nil
}

func (s *DirectorySyncService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.metrics.SyncFailures.WithLabelValues("cache").Inc()
	}
}

func (s *DirectorySyncService) publish(ctx context.Context, eventType string, doctor entity.Doctor) {
	if s.producer == nil {
		return
	}

	event := DoctorChangeEvent{
		Type:       eventType,
		DoctorID:   doctor.ID,
		Slug:       doctor.Slug,
		IsActive:   doctor.IsActive,
		OccurredAt: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		s.fail("event", "Failed to encode %s event: %+v", eventType, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, syncStepTimeout)
	defer cancel()

	if err := s.producer.Publish(ctx, []byte(doctor.ID.String()), value); err != nil {
		s.fail("event", "Failed to publish %s event for doctor %s: %+v", eventType, doctor.ID, err)
	}
}

func (s *DirectorySyncService) fail(step string, format string, args ...interface{}) {
	s.metrics.SyncFailures.WithLabelValues(step).Inc()
	s.log.Warnf(format, args...)
	monitoring.CaptureError(fmt.Errorf(format, args...), map[string]interface{}{"sync_step": step})
}
