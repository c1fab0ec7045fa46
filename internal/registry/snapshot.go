package registry

import (
	"github.com/google/uuid"

	"github.com/lawliet8886/RPA/internal/entity"
)

// Snapshot is a self-contained copy of the registry state, suitable for
// JSON persistence outside the process.
type Snapshot struct {
	Workers     []entity.Worker     `json:"workers"`
	Attachments []entity.Attachment `json:"attachments"`
	Shifts      []entity.Shift      `json:"shifts"`
	PriceRules  []entity.PriceRule  `json:"price_rules"`
}

// Snapshot copies the full state. The copy shares nothing with the live
// registry; mutating it later is safe.
func (r *Registry) Snapshot() Snapshot {
	workers := r.ListWorkers()
	for i := range workers {
		workers[i].Extracted = copyExtracted(workers[i].Extracted)
	}

	r.mu.RLock()
	attachments := make([]entity.Attachment, 0, len(r.attachments))
	for _, a := range r.attachments {
		attachments = append(attachments, a)
	}
	shifts := make([]entity.Shift, 0, len(r.shifts))
	for _, s := range r.shifts {
		shifts = append(shifts, s)
	}
	r.mu.RUnlock()

	return Snapshot{
		Workers:     workers,
		Attachments: attachments,
		Shifts:      shifts,
		PriceRules:  r.ListPriceRules(),
	}
}

// Restore replaces the registry state with a previously taken snapshot.
func (r *Registry) Restore(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.workers = make(map[uuid.UUID]entity.Worker, len(snap.Workers))
	for _, w := range snap.Workers {
		w.Extracted = copyExtracted(w.Extracted)
		r.workers[w.ID] = w
	}
	r.attachments = make(map[uuid.UUID]entity.Attachment, len(snap.Attachments))
	for _, a := range snap.Attachments {
		r.attachments[a.ID] = a
	}
	r.shifts = make(map[uuid.UUID]entity.Shift, len(snap.Shifts))
	for _, s := range snap.Shifts {
		r.shifts[s.ID] = s
	}
	r.prices = make(map[entity.PriceKey]entity.PriceRule, len(snap.PriceRules))
	for _, rule := range snap.PriceRules {
		r.prices[rule.Key()] = rule
	}

	r.logger.Info("registry.restored",
		"workers", len(snap.Workers),
		"attachments", len(snap.Attachments),
		"shifts", len(snap.Shifts),
		"price_rules", len(snap.PriceRules))
}

func copyExtracted(f entity.ExtractedFields) entity.ExtractedFields {
	if f.ComprovanteEhNominal != nil {
		v := *f.ComprovanteEhNominal
		f.ComprovanteEhNominal = &v
	}
	return f
}
