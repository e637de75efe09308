package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sdiary/pkg/storage"
	"sdiary/pkg/utils"
)

const (
	// DateLayout is the calendar-date format used everywhere: zero-padded
	// ISO, so lexicographic comparison orders dates correctly.
	DateLayout = "2006-01-02"

	// TimeLayout is the time-of-day format ("HH:mm")
	TimeLayout = "15:04"
)

// ErrNotFound is returned when a mutation targets an id that no longer
// exists. Lookups never return it; they report absence with a bool.
var ErrNotFound = errors.New("record not found")

// ErrValidation wraps all input validation failures
var ErrValidation = errors.New("validation failed")

// Store owns every application record: the five persisted collections and
// the ephemeral toast queue. All mutations and queries go through it, and
// it is the only writer to the storage backend.
//
// Every mutation updates the in-memory collection first and then writes the
// full serialization back to the backend. A failed write is logged and
// otherwise ignored: the user's flow is never interrupted by a storage
// fault, at the cost of that change not surviving a restart.
type Store struct {
	mu      sync.Mutex
	backend storage.Backend

	now       func() time.Time
	newID     func(prefix string) string
	reminders ReminderSink
	listeners []func()

	customers    []Customer
	tasks        []Task
	visitHistory []VisitHistory
	products     []string
	settings     AppSettings

	toasts     []Toast
	toastTimer *time.Timer
}

// Option configures a Store at construction time
type Option func(*Store)

// WithClock replaces the wall clock, for deterministic tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the id generator, for deterministic tests
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithReminderSink replaces the reminder intention sink
func WithReminderSink(sink ReminderSink) Option {
	return func(s *Store) { s.reminders = sink }
}

// New loads all collections from the backend and returns a ready store.
// Missing or unreadable collections silently fall back to their defaults:
// corrupt local storage must never prevent the app from starting.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		now:       time.Now,
		newID:     defaultID,
		reminders: logSink{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.customers = loadCollection(backend, storage.KeyCustomers, []Customer{})
	s.tasks = loadCollection(backend, storage.KeyTasks, []Task{})
	s.visitHistory = loadCollection(backend, storage.KeyVisitHistory, []VisitHistory{})
	s.products = loadCollection(backend, storage.KeyProducts, []string{"Product A", "Product B"})
	s.settings = loadCollection(backend, storage.KeySettings, AppSettings{
		UserName:            "Salesperson",
		DefaultReminderTime: "09:00",
	})

	return s
}

func defaultID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// loadCollection deserializes the collection stored under key, falling back
// to fallback when the key is absent or the stored value does not parse
func loadCollection[T any](backend storage.Backend, key string, fallback T) T {
	raw, ok, err := backend.Read(key)
	if err != nil {
		utils.Log("read %s failed, using default: %v", key, err)
		return fallback
	}
	if !ok {
		return fallback
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		utils.Log("stored %s is corrupt, using default: %v", key, err)
		return fallback
	}
	return value
}

// persist writes the full serialization of value under key. Failures are
// logged and swallowed; the in-memory state has already advanced.
func (s *Store) persist(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		utils.Log("serialize %s failed: %v", key, err)
		return
	}
	if err := s.backend.Write(key, string(data)); err != nil {
		utils.Log("write %s failed, change will not survive a restart: %v", key, err)
	}
}

// Subscribe registers a callback invoked after every state change,
// including toast expiry. The view layer uses this to re-render.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Customers returns a copy of the customer collection, newest first
func (s *Store) Customers() []Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Customer(nil), s.customers...)
}

// Tasks returns a copy of the task collection, newest first
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Task(nil), s.tasks...)
}

// VisitHistory returns a copy of the visit history, newest first
func (s *Store) VisitHistory() []VisitHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]VisitHistory(nil), s.visitHistory...)
}

// Products returns a copy of the product list in insertion order
func (s *Store) Products() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.products...)
}

// Settings returns the settings record
func (s *Store) Settings() AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// AddCustomer assigns a fresh id and creation timestamp, prepends the
// customer, and logs one visit history entry. Name and mobile number are
// required.
func (s *Store) AddCustomer(data Customer) (Customer, error) {
	if err := validateCustomer(data); err != nil {
		return Customer{}, err
	}

	s.mu.Lock()
	data.ID = s.newID("cust")
	data.CreatedAt = s.now().Format(time.RFC3339)
	s.customers = append([]Customer{data}, s.customers...)
	s.persist(storage.KeyCustomers, s.customers)
	s.appendVisitHistory(data)
	s.mu.Unlock()

	s.scheduleVisitReminder(data)
	s.notify()
	utils.Log("added customer %s", data.ID)
	return data, nil
}

// UpdateCustomer replaces the customer with the matching id in place. The
// id and creation timestamp of the stored record are preserved regardless
// of what the caller passes. Like AddCustomer it logs one visit history
// entry; history is purely additive.
func (s *Store) UpdateCustomer(updated Customer) error {
	if err := validateCustomer(updated); err != nil {
		return err
	}

	s.mu.Lock()
	idx := -1
	for i, c := range s.customers {
		if c.ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("customer %s: %w", updated.ID, ErrNotFound)
	}

	updated.CreatedAt = s.customers[idx].CreatedAt
	s.customers[idx] = updated
	s.persist(storage.KeyCustomers, s.customers)
	s.appendVisitHistory(updated)
	s.mu.Unlock()

	s.scheduleVisitReminder(updated)
	s.notify()
	utils.Log("updated customer %s", updated.ID)
	return nil
}

func validateCustomer(c Customer) error {
	if strings.TrimSpace(c.CustomerName) == "" || strings.TrimSpace(c.MobileNumber) == "" {
		return fmt.Errorf("%w: customer name and mobile number are required", ErrValidation)
	}
	return nil
}

// appendVisitHistory prepends an audit entry snapshotting the customer.
// Caller holds the lock.
func (s *Store) appendVisitHistory(c Customer) {
	entry := VisitHistory{
		ID:           s.newID("vh"),
		CustomerID:   c.ID,
		VisitDate:    s.now().Format(time.RFC3339),
		Remark:       c.Remark,
		CustomerName: c.CustomerName,
		MobileNumber: c.MobileNumber,
	}
	s.visitHistory = append([]VisitHistory{entry}, s.visitHistory...)
	s.persist(storage.KeyVisitHistory, s.visitHistory)
}

// CustomerByID looks up a customer. Absence is an expected state, not an
// error; callers redirect or toast.
func (s *Store) CustomerByID(id string) (Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

// VisitHistoryForCustomer returns the audit entries for one customer in
// stored (newest-first) order
func (s *Store) VisitHistoryForCustomer(customerID string) []VisitHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []VisitHistory
	for _, vh := range s.visitHistory {
		if vh.CustomerID == customerID {
			entries = append(entries, vh)
		}
	}
	return entries
}

// AddTask assigns a fresh id, forces the task incomplete, and prepends it.
// The title is required.
func (s *Store) AddTask(data Task) (Task, error) {
	if strings.TrimSpace(data.TaskTitle) == "" {
		return Task{}, fmt.Errorf("%w: task title is required", ErrValidation)
	}

	s.mu.Lock()
	data.ID = s.newID("task")
	data.IsComplete = false
	s.tasks = append([]Task{data}, s.tasks...)
	s.persist(storage.KeyTasks, s.tasks)
	s.mu.Unlock()

	if data.SetReminder {
		s.scheduleTaskReminder(data)
	}
	s.notify()
	utils.Log("added task %s", data.ID)
	return data, nil
}

// UpdateTask replaces the task with the matching id, order unchanged
func (s *Store) UpdateTask(updated Task) error {
	if strings.TrimSpace(updated.TaskTitle) == "" {
		return fmt.Errorf("%w: task title is required", ErrValidation)
	}

	s.mu.Lock()
	idx := -1
	for i, t := range s.tasks {
		if t.ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("task %s: %w", updated.ID, ErrNotFound)
	}
	s.tasks[idx] = updated
	s.persist(storage.KeyTasks, s.tasks)
	s.mu.Unlock()

	s.notify()
	utils.Log("updated task %s", updated.ID)
	return nil
}

// DeleteTask removes the task with the given id. Deleting an absent id is
// a no-op.
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.persist(storage.KeyTasks, s.tasks)
	s.mu.Unlock()

	s.notify()
}

// ToggleTaskComplete flips the completion flag of the task with the given
// id. Toggling an absent id is a no-op.
func (s *Store) ToggleTaskComplete(id string) {
	s.mu.Lock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks[i].IsComplete = !t.IsComplete
			break
		}
	}
	s.persist(storage.KeyTasks, s.tasks)
	s.mu.Unlock()

	s.notify()
}

// TaskByID looks up a task
func (s *Store) TaskByID(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// AddProduct appends a product name, trimmed. Blank names and exact
// duplicates are ignored.
func (s *Store) AddProduct(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	s.mu.Lock()
	for _, p := range s.products {
		if p == name {
			s.mu.Unlock()
			return
		}
	}
	s.products = append(s.products, name)
	s.persist(storage.KeyProducts, s.products)
	s.mu.Unlock()

	s.notify()
}

// RemoveProduct removes the exact-match entry, if present
func (s *Store) RemoveProduct(name string) {
	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p != name {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.persist(storage.KeyProducts, s.products)
	s.mu.Unlock()

	s.notify()
}

// SettingsPatch carries a partial settings update; nil fields keep their
// prior value
type SettingsPatch struct {
	UserName            *string
	DefaultReminderTime *string
}

// UpdateSettings merges the patch into the settings record
func (s *Store) UpdateSettings(patch SettingsPatch) {
	s.mu.Lock()
	if patch.UserName != nil {
		s.settings.UserName = *patch.UserName
	}
	if patch.DefaultReminderTime != nil {
		s.settings.DefaultReminderTime = *patch.DefaultReminderTime
	}
	s.persist(storage.KeySettings, s.settings)
	s.mu.Unlock()

	s.notify()
}

// DeleteAllData clears customers, tasks and visit history. Products and
// settings survive on purpose: they are configuration, not transactional
// data. Irreversible; callers must confirm with the user first.
func (s *Store) DeleteAllData() {
	s.mu.Lock()
	s.customers = []Customer{}
	s.tasks = []Task{}
	s.visitHistory = []VisitHistory{}
	s.persist(storage.KeyCustomers, s.customers)
	s.persist(storage.KeyTasks, s.tasks)
	s.persist(storage.KeyVisitHistory, s.visitHistory)
	s.mu.Unlock()

	s.notify()
	utils.Log("deleted all customers, tasks and visit history")
}
