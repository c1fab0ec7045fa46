// Package async runs text recognition off the caller's path. Attachments are
// queued as they arrive; a fixed worker pool asks the recognizer for the
// document text and folds the result into the worker's extracted fields.
package async

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/lawliet8886/RPA/internal/registry"
)

// Job points at one attachment awaiting recognition.
type Job struct {
	WorkerID     uuid.UUID
	AttachmentID uuid.UUID
	SubmittedAt  time.Time
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// Recognizer turns a stored document into text. Implementations sit at the
// process boundary (an OCR engine or service client).
type Recognizer interface {
	Recognize(ctx context.Context, storageRef, mimeType string) (string, error)
}

type RecognitionQueue struct {
	reg        *registry.Registry
	recognizer Recognizer
	logger     *slog.Logger
	workers    int
	timeout    time.Duration

	ch   chan Job
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once

	mu        sync.Mutex
	closed    bool
	enqueuers sync.WaitGroup
}

type Option func(*RecognitionQueue)

func WithWorkers(n int) Option {
	return func(q *RecognitionQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *RecognitionQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *RecognitionQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewRecognitionQueue(reg *registry.Registry, recognizer Recognizer, logger *slog.Logger, opts ...Option) *RecognitionQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &RecognitionQueue{
		reg:        reg,
		recognizer: recognizer,
		logger:     logger,
		workers:    2,
		timeout:    time.Minute,
		ch:         make(chan Job, 64),
		done:       make(chan struct{}),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *RecognitionQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("recognition worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					err := q.process(ctx, job)
					cancel()

					if err != nil {
						q.logger.Error("recognition failed", "worker_id", workerID, "attachment_id", job.AttachmentID, "error", err)
					} else {
						q.logger.Info("recognition applied", "worker_id", workerID, "attachment_id", job.AttachmentID)
					}
				}

				q.logger.Info("recognition worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *RecognitionQueue) process(ctx context.Context, job Job) error {
	att, err := q.reg.GetAttachment(job.AttachmentID)
	if err != nil {
		return err
	}
	text, err := q.recognizer.Recognize(ctx, att.StorageRef, att.MimeType)
	if err != nil {
		return err
	}
	_, err = q.reg.ApplyRecognizedText(job.WorkerID, job.AttachmentID, text)
	return err
}

// Enqueue submits a job, blocking when the queue is full. The blocking send
// happens outside the mutex so a full queue cannot wedge Shutdown; a shutdown
// started while waiting abandons the job.
func (q *RecognitionQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.logger.Warn("cannot enqueue: queue is shutting down", "attachment_id", job.AttachmentID)
		return nil
	}
	q.enqueuers.Add(1)
	q.mu.Unlock()
	defer q.enqueuers.Done()

	select {
	case q.ch <- job:
		q.logger.Info("queued attachment for recognition", "attachment_id", job.AttachmentID)
		return nil
	default:
	}

	q.logger.Warn("queue full, applying backpressure", "attachment_id", job.AttachmentID)
	select {
	case q.ch <- job:
	case <-q.done:
		q.logger.Warn("cannot enqueue: queue is shutting down", "attachment_id", job.AttachmentID)
	}
	return nil
}

func (q *RecognitionQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.done)
	q.mu.Unlock()

	// the channel closes only once no Enqueue can still be sending on it
	q.enqueuers.Wait()
	close(q.ch)

	drained := make(chan struct{})
	go func() { defer close(drained); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-drained:
		q.logger.Info("queue drained, shutdown complete")
	}
}
