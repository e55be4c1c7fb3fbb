package world

import (
	"fmt"
	"time"

	"github.com/strangerlabs/hawkins-core/internal/infrastructure/logging"
)

// World exposes the domain operations over a Store. Every mutator is a
// load-mutate-save round trip that persists before returning.
type World struct {
	store  Store
	logger *logging.Logger
}

// New creates a World over the given store.
func New(store Store, logger *logging.Logger) *World {
	return &World{
		store:  store,
		logger: logger,
	}
}

// State returns the full current document.
func (w *World) State() (*Document, error) {
	return w.store.Load()
}

// SetGate sets the gate flag. Closing is idempotent; callers may pass
// any gate identifier upstream without validation (kept permissive on
// purpose, matching the documented behaviour).
func (w *World) SetGate(open bool) error {
	doc, err := w.store.Load()
	if err != nil {
		return err
	}
	doc.GateOpen = open
	return w.store.Save(doc)
}

// DamageMonster applies damage to a monster, flooring health at zero.
// A zero-health monster can still be damaged (no-op at the floor).
// Damage validation (numeric, > 0) happens at the HTTP boundary.
func (w *World) DamageMonster(id, damage int) (*Monster, error) {
	doc, err := w.store.Load()
	if err != nil {
		return nil, err
	}

	for i := range doc.Monsters {
		if doc.Monsters[i].ID != id {
			continue
		}
		doc.Monsters[i].Health = max(0, doc.Monsters[i].Health-damage)
		if err := w.store.Save(doc); err != nil {
			return nil, err
		}
		m := doc.Monsters[i]
		return &m, nil
	}
	return nil, fmt.Errorf("monster %d: %w", id, ErrMonsterNotFound)
}

// UseItem decrements an inventory item's quantity. Quantity never goes
// negative: at zero the item stays unchanged and ErrOutOfStock is returned.
func (w *World) UseItem(id int) (*InventoryItem, error) {
	doc, err := w.store.Load()
	if err != nil {
		return nil, err
	}

	for i := range doc.Inventory {
		if doc.Inventory[i].ID != id {
			continue
		}
		if doc.Inventory[i].Quantity <= 0 {
			return nil, fmt.Errorf("item %d: %w", id, ErrOutOfStock)
		}
		doc.Inventory[i].Quantity--
		if err := w.store.Save(doc); err != nil {
			return nil, err
		}
		item := doc.Inventory[i]
		return &item, nil
	}
	return nil, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
}

// OpenPortal opens the gate using the named energy spike and returns
// the spike used. Unknown spikes fail with ErrSpikeNotFound.
func (w *World) OpenPortal(spikeID int) (*EnergySpike, error) {
	doc, err := w.store.Load()
	if err != nil {
		return nil, err
	}

	for _, spike := range doc.EnergySpikes {
		if spike.ID != spikeID {
			continue
		}
		doc.GateOpen = true
		if err := w.store.Save(doc); err != nil {
			return nil, err
		}
		return &spike, nil
	}
	return nil, fmt.Errorf("spike %d: %w", spikeID, ErrSpikeNotFound)
}

// AddExperiment appends an experiment, assigning the next sequential ID
// and stamping the creation time. Field validation happens at the HTTP
// boundary.
func (w *World) AddExperiment(exp Experiment) (*Experiment, error) {
	doc, err := w.store.Load()
	if err != nil {
		return nil, err
	}

	exp.ID = len(doc.Experiments) + 1
	exp.CreatedAt = time.Now().UTC()
	doc.Experiments = append(doc.Experiments, exp)

	if err := w.store.Save(doc); err != nil {
		return nil, err
	}
	return &exp, nil
}

// AddEvidence appends an evidence record under the same sequential ID rule.
func (w *World) AddEvidence(ev Evidence) (*Evidence, error) {
	doc, err := w.store.Load()
	if err != nil {
		return nil, err
	}

	ev.ID = len(doc.Evidence) + 1
	ev.CreatedAt = time.Now().UTC()
	doc.Evidence = append(doc.Evidence, ev)

	if err := w.store.Save(doc); err != nil {
		return nil, err
	}
	return &ev, nil
}

// EvidenceByID returns a single evidence record.
func (w *World) EvidenceByID(id int) (*Evidence, error) {
	doc, err := w.store.Load()
	if err != nil {
		return nil, err
	}

	for _, ev := range doc.Evidence {
		if ev.ID == id {
			return &ev, nil
		}
	}
	return nil, fmt.Errorf("evidence %d: %w", id, ErrEvidenceNotFound)
}

// Inventory returns all inventory items.
func (w *World) Inventory() ([]InventoryItem, error) {
	doc, err := w.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Inventory, nil
}

// Pagination defaults for FilterSpikes.
const (
	defaultSpikeLimit = 10
)

// SpikeFilter selects and pages energy spikes.
type SpikeFilter struct {
	// Zone filters by exact zone name when non-empty.
	Zone string

	// MinEnergy filters spikes below the threshold when non-nil.
	MinEnergy *int

	// Limit defaults to 10 when not positive; Offset floors at 0.
	Limit  int
	Offset int
}

// SpikePage is one page of filtered spikes.
type SpikePage struct {
	Spikes  []EnergySpike
	Total   int
	Page    int
	HasMore bool
}

// FilterSpikes applies zone and minimum-energy filters, then paginates:
// page = offset/limit + 1, hasMore = offset+limit < total.
func (w *World) FilterSpikes(f SpikeFilter) (*SpikePage, error) {
	doc, err := w.store.Load()
	if err != nil {
		return nil, err
	}

	filtered := make([]EnergySpike, 0, len(doc.EnergySpikes))
	for _, spike := range doc.EnergySpikes {
		if f.Zone != "" && spike.Zone != f.Zone {
			continue
		}
		if f.MinEnergy != nil && spike.Energy < *f.MinEnergy {
			continue
		}
		filtered = append(filtered, spike)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultSpikeLimit
	}
	offset := max(0, f.Offset)

	total := len(filtered)
	start := min(offset, total)
	end := min(offset+limit, total)

	return &SpikePage{
		Spikes:  filtered[start:end],
		Total:   total,
		Page:    offset/limit + 1,
		HasMore: offset+limit < total,
	}, nil
}
