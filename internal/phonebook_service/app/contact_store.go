package app

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aradsms/phonebook/internal/phonebook_service/domain"
)

// ContactStore owns the ordered contact collection and its persistence.
//
// Add, RemoveAt and Replace assume a single goroutine drives the store.
// Save and Load serialize on persistMu, so at most one of them is in flight.
type ContactStore struct {
	repo   domain.ContactRepository
	logger *slog.Logger

	persistMu sync.Mutex
	contacts  []domain.Contact
}

// NewContactStore creates an empty store backed by repo.
func NewContactStore(repo domain.ContactRepository, logger *slog.Logger) *ContactStore {
	return &ContactStore{
		repo:     repo,
		logger:   logger,
		contacts: []domain.Contact{},
	}
}

// List returns a snapshot of all contacts in store order.
func (s *ContactStore) List() []domain.Contact {
	out := make([]domain.Contact, len(s.contacts))
	for i, c := range s.contacts {
		out[i] = c.Clone()
	}
	return out
}

// Len returns the number of contacts.
func (s *ContactStore) Len() int {
	return len(s.contacts)
}

// Get returns a copy of the contact at index.
func (s *ContactStore) Get(index int) (domain.Contact, bool) {
	if index < 0 || index >= len(s.contacts) {
		return domain.Contact{}, false
	}
	return s.contacts[index].Clone(), true
}

// Add appends a contact. Nothing is persisted until Save.
func (s *ContactStore) Add(c domain.Contact) {
	s.contacts = append(s.contacts, c.Clone())
	storeOperationsCounter.WithLabelValues("add", statusSuccess).Inc()
	storeContactsGauge.Set(float64(len(s.contacts)))
	s.logger.Info("Contact added", "full_name", c.FullName, "index", len(s.contacts)-1)
}

// RemoveAt deletes the contact at index. An out-of-range index is ignored.
func (s *ContactStore) RemoveAt(index int) {
	if index < 0 || index >= len(s.contacts) {
		storeOperationsCounter.WithLabelValues("remove", statusNoop).Inc()
		s.logger.Debug("Remove ignored, index out of range", "index", index, "len", len(s.contacts))
		return
	}
	removed := s.contacts[index]
	s.contacts = slices.Delete(s.contacts, index, index+1)
	storeOperationsCounter.WithLabelValues("remove", statusSuccess).Inc()
	storeContactsGauge.Set(float64(len(s.contacts)))
	s.logger.Info("Contact removed", "full_name", removed.FullName, "index", index)
}

// Replace swaps the contact at index for c.
// It returns domain.ErrContactNotFound if index is out of range.
func (s *ContactStore) Replace(index int, c domain.Contact) error {
	if index < 0 || index >= len(s.contacts) {
		storeOperationsCounter.WithLabelValues("replace", statusError).Inc()
		return domain.ErrContactNotFound
	}
	s.contacts[index] = c.Clone()
	storeOperationsCounter.WithLabelValues("replace", statusSuccess).Inc()
	s.logger.Info("Contact updated", "full_name", c.FullName, "index", index)
	return nil
}

// Save writes every contact to the backing file.
func (s *ContactStore) Save(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	start := time.Now()
	err := s.repo.Save(ctx, s.List())
	storePersistDurationHist.WithLabelValues("save").Observe(time.Since(start).Seconds())
	if err != nil {
		storeOperationsCounter.WithLabelValues("save", statusError).Inc()
		s.logger.ErrorContext(ctx, "Failed to save contacts", "location", s.repo.Location(), "error", err)
		return err
	}
	storeOperationsCounter.WithLabelValues("save", statusSuccess).Inc()
	s.logger.InfoContext(ctx, "Contacts saved", "location", s.repo.Location(), "count", len(s.contacts))
	return nil
}

// Load replaces the in-memory contacts with the stored ones. On error the
// in-memory contacts are left as they were.
func (s *ContactStore) Load(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	start := time.Now()
	loaded, err := s.repo.Load(ctx)
	storePersistDurationHist.WithLabelValues("load").Observe(time.Since(start).Seconds())
	if err != nil {
		storeOperationsCounter.WithLabelValues("load", statusError).Inc()
		s.logger.ErrorContext(ctx, "Failed to load contacts", "location", s.repo.Location(), "error", err)
		return err
	}
	if loaded == nil {
		loaded = []domain.Contact{}
	}
	s.contacts = loaded
	storeOperationsCounter.WithLabelValues("load", statusSuccess).Inc()
	storeContactsGauge.Set(float64(len(s.contacts)))
	s.logger.InfoContext(ctx, "Contacts loaded", "location", s.repo.Location(), "count", len(s.contacts))
	return nil
}
