package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qusailover-design/cv-doctor/internal/models"
	"github.com/qusailover-design/cv-doctor/internal/repositories"
)

// AuditEvent is the outcome of one analyze or enhance request.
type AuditEvent struct {
	Kind         models.AnalysisKind
	Filename     string
	Lang         string
	TextLength   int
	OverallScore *int
	Status       models.AnalysisStatus
	ErrorMessage string
	Duration     time.Duration
}

// AuditTrail drains events to Postgres off the request path. Audit is best
// effort: a full queue drops the event rather than blocking a request.
type AuditTrail interface {
	Start()
	Stop()
	Record(event AuditEvent)
}

type auditTrail struct {
	repo        repositories.AnalysisRepository
	events      chan AuditEvent
	concurrency int
	wg          sync.WaitGroup
	stopOnce    sync.Once
	stopChan    chan struct{}
}

func NewAuditTrail(repo repositories.AnalysisRepository, queueSize, concurrency int) AuditTrail {
	return &auditTrail{
		repo:        repo,
		events:      make(chan AuditEvent, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements AuditTrail.
func (a *auditTrail) Start() {
	log.Printf("🚀 Starting audit trail with %d writers\n", a.concurrency)

	for i := 0; i < a.concurrency; i++ {
		a.wg.Add(1)
		go a.drainEvents(i + 1)
	}
}

// Stop implements AuditTrail. Queued events are flushed before return.
func (a *auditTrail) Stop() {
	a.stopOnce.Do(func() {
		log.Println("🛑 Stopping audit trail...")
		close(a.stopChan)
		a.wg.Wait()
		log.Println("✅ Audit trail stopped")
	})
}

// Record implements AuditTrail. Never blocks the caller.
func (a *auditTrail) Record(event AuditEvent) {
	select {
	case a.events <- event:
	default:
		log.Printf("⚠️  Audit queue full, dropping %s event for %s\n", event.Kind, event.Filename)
	}
}

func (a *auditTrail) drainEvents(writerID int) {
	defer a.wg.Done()

	for {
		select {
		case event := <-a.events:
			a.persist(writerID, event)
		case <-a.stopChan:
			// Flush whatever is still queued
			for {
				select {
				case event := <-a.events:
					a.persist(writerID, event)
				default:
					return
				}
			}
		}
	}
}

func (a *auditTrail) persist(writerID int, event AuditEvent) {
	record := &models.AnalysisRecord{
		ID:           uuid.New(),
		Kind:         event.Kind,
		Filename:     event.Filename,
		Lang:         event.Lang,
		TextLength:   event.TextLength,
		OverallScore: event.OverallScore,
		Status:       event.Status,
		ErrorMessage: event.ErrorMessage,
		DurationMs:   event.Duration.Milliseconds(),
		CreatedAt:    time.Now(),
	}

	if err := a.repo.Create(record); err != nil {
		log.Printf("⚠️  Audit writer #%d failed to persist record: %v\n", writerID, err)
	}
}
