// Package registry is the in-memory working set for a collection session:
// workers, their attachments and shifts, and the shared price table. All
// mutating operations are atomic under one lock, and reads hand out copies,
// so callers never observe a half-applied update. Persistence lives with the
// caller, via Snapshot and Restore.
package registry

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lawliet8886/RPA/constants"
	"github.com/lawliet8886/RPA/internal/common"
	"github.com/lawliet8886/RPA/internal/entity"
	"github.com/lawliet8886/RPA/internal/extract"
)

type Registry struct {
	mu     sync.RWMutex
	logger *slog.Logger

	workers     map[uuid.UUID]entity.Worker
	attachments map[uuid.UUID]entity.Attachment
	shifts      map[uuid.UUID]entity.Shift
	prices      map[entity.PriceKey]entity.PriceRule
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:      logger,
		workers:     make(map[uuid.UUID]entity.Worker),
		attachments: make(map[uuid.UUID]entity.Attachment),
		shifts:      make(map[uuid.UUID]entity.Shift),
		prices:      make(map[entity.PriceKey]entity.PriceRule),
	}
}

// CreateWorker registers a new worker under the default role.
func (r *Registry) CreateWorker(nome string) (entity.Worker, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return entity.Worker{}, common.NewAppError("WORKER_NAME", "worker name is required", common.ErrInvalidInput)
	}

	w := entity.Worker{
		ID:     uuid.New(),
		Nome:   nome,
		Funcao: entity.DefaultFuncao,
	}

	r.mu.Lock()
	r.workers[w.ID] = w
	r.mu.Unlock()

	r.logger.Info("registry.worker.created", "worker_id", w.ID, "nome", w.Nome)
	return w, nil
}

// UpdateWorker replaces an existing worker record wholesale. Manual edits to
// extracted fields arrive through here together with their override flags.
func (r *Registry) UpdateWorker(w entity.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.workers[w.ID]; !ok {
		return workerNotFound(w.ID)
	}
	r.workers[w.ID] = w
	return nil
}

func (r *Registry) GetWorker(id uuid.UUID) (entity.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workers[id]
	if !ok {
		return entity.Worker{}, workerNotFound(id)
	}
	return w, nil
}

// ListWorkers returns all workers ordered by name.
func (r *Registry) ListWorkers() []entity.Worker {
	r.mu.RLock()
	out := make([]entity.Worker, 0, len(r.workers))
	for _, w := range r.workers {
		out = append(out, w)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out
}

// DeleteWorker removes a worker and everything hanging off it.
func (r *Registry) DeleteWorker(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.workers[id]; !ok {
		return workerNotFound(id)
	}
	delete(r.workers, id)
	for aid, a := range r.attachments {
		if a.WorkerID == id {
			delete(r.attachments, aid)
		}
	}
	for sid, s := range r.shifts {
		if s.WorkerID == id {
			delete(r.shifts, sid)
		}
	}

	r.logger.Info("registry.worker.deleted", "worker_id", id)
	return nil
}

// AddAttachment files a picked document under a worker and category.
func (r *Registry) AddAttachment(workerID uuid.UUID, category constants.DocCategory, storageRef, displayName, mimeType string) (entity.Attachment, error) {
	if _, ok := constants.ParseCategory(string(category)); !ok {
		return entity.Attachment{}, common.NewAppError("ATTACHMENT_CATEGORY", "unknown document category: "+string(category), common.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.workers[workerID]; !ok {
		return entity.Attachment{}, workerNotFound(workerID)
	}
	a := entity.Attachment{
		ID:          uuid.New(),
		WorkerID:    workerID,
		Category:    category,
		StorageRef:  storageRef,
		DisplayName: displayName,
		MimeType:    mimeType,
		CreatedAt:   time.Now(),
	}
	r.attachments[a.ID] = a

	r.logger.Info("registry.attachment.added", "worker_id", workerID, "category", category, "name", displayName)
	return a, nil
}

// ListAttachments returns a worker's attachments, oldest first.
func (r *Registry) ListAttachments(workerID uuid.UUID) []entity.Attachment {
	r.mu.RLock()
	out := make([]entity.Attachment, 0, 8)
	for _, a := range r.attachments {
		if a.WorkerID == workerID {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *Registry) GetAttachment(id uuid.UUID) (entity.Attachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.attachments[id]
	if !ok {
		return entity.Attachment{}, common.NewAppError("ATTACHMENT_NOT_FOUND", "attachment "+id.String()+" not found", common.ErrNotFound)
	}
	return a, nil
}

func (r *Registry) DeleteAttachment(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.attachments[id]; !ok {
		return common.NewAppError("ATTACHMENT_NOT_FOUND", "attachment "+id.String()+" not found", common.ErrNotFound)
	}
	delete(r.attachments, id)
	return nil
}

// ApplyRecognizedText records an attachment's recognized text and folds any
// newly readable fields into the worker. Existing field values win; the merge
// never overwrites.
func (r *Registry) ApplyRecognizedText(workerID, attachmentID uuid.UUID, text string) (entity.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workers[workerID]
	if !ok {
		return entity.Worker{}, workerNotFound(workerID)
	}
	a, ok := r.attachments[attachmentID]
	if !ok || a.WorkerID != workerID {
		return entity.Worker{}, common.NewAppError("ATTACHMENT_NOT_FOUND", "attachment "+attachmentID.String()+" not found for worker", common.ErrNotFound)
	}

	a.OCRText = text
	r.attachments[attachmentID] = a

	w.Extracted = extract.Merge(w.Extracted, text, w.Nome)
	r.workers[workerID] = w

	r.logger.Info("registry.worker.text_applied", "worker_id", workerID, "attachment_id", attachmentID)
	return w, nil
}

// AddShift records a worked period. The date must be a valid yyyy-MM-dd day.
func (r *Registry) AddShift(workerID uuid.UUID, dateISO string, hours int, period constants.ShiftPeriod) (entity.Shift, error) {
	if _, err := time.Parse("2006-01-02", dateISO); err != nil {
		return entity.Shift{}, common.NewAppError("SHIFT_DATE", "shift date must be yyyy-MM-dd", common.ErrInvalidInput)
	}
	if hours <= 0 {
		return entity.Shift{}, common.NewAppError("SHIFT_HOURS", "shift hours must be positive", common.ErrInvalidInput)
	}
	if period != constants.ShiftDay && period != constants.ShiftNight {
		return entity.Shift{}, common.NewAppError("SHIFT_PERIOD", "unknown shift period: "+string(period), common.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.workers[workerID]; !ok {
		return entity.Shift{}, workerNotFound(workerID)
	}
	s := entity.Shift{
		ID:       uuid.New(),
		WorkerID: workerID,
		DateISO:  dateISO,
		Hours:    hours,
		Period:   period,
	}
	r.shifts[s.ID] = s
	return s, nil
}

// ListShifts returns a worker's shifts in date order.
func (r *Registry) ListShifts(workerID uuid.UUID) []entity.Shift {
	r.mu.RLock()
	out := make([]entity.Shift, 0, 8)
	for _, s := range r.shifts {
		if s.WorkerID == workerID {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].DateISO < out[j].DateISO })
	return out
}

func (r *Registry) DeleteShift(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shifts[id]; !ok {
		return common.NewAppError("SHIFT_NOT_FOUND", "shift "+id.String()+" not found", common.ErrNotFound)
	}
	delete(r.shifts, id)
	return nil
}

// UpsertPriceRules merges imported rules into the price table. An existing
// rule with the same role x period x hours key keeps its identity and takes
// the new value; everything else is inserted. Returns inserted and updated
// counts.
func (r *Registry) UpsertPriceRules(imported []entity.ImportedPriceRule) (inserted, updated int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, in := range imported {
		key := entity.PriceKey{Funcao: in.Funcao, Period: in.Period, Hours: in.Hours}
		if existing, ok := r.prices[key]; ok {
			if !existing.Value.Equal(in.Value) {
				existing.Value = in.Value
				r.prices[key] = existing
				updated++
			}
			continue
		}
		r.prices[key] = entity.PriceRule{
			ID:     uuid.New(),
			Funcao: in.Funcao,
			Period: in.Period,
			Hours:  in.Hours,
			Value:  in.Value,
		}
		inserted++
	}

	r.logger.Info("registry.prices.upserted", "inserted", inserted, "updated", updated)
	return inserted, updated
}

// PriceFor looks up the rule matching a shift's role, period and hours.
func (r *Registry) PriceFor(key entity.PriceKey) (entity.PriceRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.prices[key]
	return rule, ok
}

// ListPriceRules returns the price table ordered by role, period, hours.
func (r *Registry) ListPriceRules() []entity.PriceRule {
	r.mu.RLock()
	out := make([]entity.PriceRule, 0, len(r.prices))
	for _, rule := range r.prices {
		out = append(out, rule)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Funcao != b.Funcao {
			return a.Funcao < b.Funcao
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.Hours < b.Hours
	})
	return out
}

func workerNotFound(id uuid.UUID) error {
	return common.NewAppError("WORKER_NOT_FOUND", "worker "+id.String()+" not found", common.ErrNotFound)
}
