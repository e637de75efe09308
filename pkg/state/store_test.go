package state

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdiary/pkg/storage"
)

func fixedClock(ts time.Time) Option {
	return WithClock(func() time.Time { return ts })
}

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	})
}

var testTime = time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)

func newTestStore(opts ...Option) (*Store, *storage.MemoryBackend) {
	backend := storage.NewMemory()
	opts = append([]Option{fixedClock(testTime), sequentialIDs()}, opts...)
	return New(backend, opts...), backend
}

func sampleCustomer() Customer {
	return Customer{
		CustomerName:  "Asha Rao",
		MobileNumber:  "9876543210",
		ReferenceBy:   "Branch walk-in",
		Product:       "Product A",
		CustomerType:  NTB,
		Remark:        "Interested in savings account",
		NextVisitDate: "2024-06-12",
		NextVisitTime: "10:30",
	}
}

func TestAddCustomerAssignsIdentityAndLogsVisit(t *testing.T) {
	store, _ := newTestStore()

	added, err := store.AddCustomer(sampleCustomer())
	require.NoError(t, err)
	assert.Equal(t, "cust_1", added.ID)
	assert.Equal(t, testTime.Format(time.RFC3339), added.CreatedAt)

	got, ok := store.CustomerByID(added.ID)
	require.True(t, ok)
	assert.Equal(t, added, got)

	history := store.VisitHistoryForCustomer(added.ID)
	require.Len(t, history, 1)
	assert.Equal(t, added.ID, history[0].CustomerID)
	assert.Equal(t, added.CustomerName, history[0].CustomerName)
	assert.Equal(t, added.MobileNumber, history[0].MobileNumber)
	assert.Equal(t, added.Remark, history[0].Remark)
}

func TestAddCustomerValidation(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.AddCustomer(Customer{CustomerName: "No Number"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = store.AddCustomer(Customer{MobileNumber: "12345"})
	require.ErrorIs(t, err, ErrValidation)

	// The mutation was never attempted
	assert.Empty(t, store.Customers())
	assert.Empty(t, store.VisitHistory())
}

func TestUpdateCustomerPreservesIdentity(t *testing.T) {
	store, _ := newTestStore()

	added, err := store.AddCustomer(sampleCustomer())
	require.NoError(t, err)

	updated := added
	updated.CustomerName = "Asha R. Rao"
	updated.Remark = "Opened the account"
	updated.CreatedAt = "2001-01-01T00:00:00Z" // must be ignored
	require.NoError(t, store.UpdateCustomer(updated))

	got, ok := store.CustomerByID(added.ID)
	require.True(t, ok)
	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, added.CreatedAt, got.CreatedAt)
	assert.Equal(t, "Asha R. Rao", got.CustomerName)
	assert.Equal(t, "Opened the account", got.Remark)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	store, _ := newTestStore()

	missing := sampleCustomer()
	missing.ID = "cust_missing"
	err := store.UpdateCustomer(missing)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.VisitHistory())
}

func TestVisitHistoryCountMatchesMutations(t *testing.T) {
	store, _ := newTestStore()

	first, err := store.AddCustomer(sampleCustomer())
	require.NoError(t, err)
	second, err := store.AddCustomer(sampleCustomer())
	require.NoError(t, err)

	require.NoError(t, store.UpdateCustomer(first))
	require.NoError(t, store.UpdateCustomer(second))
	require.NoError(t, store.UpdateCustomer(first))

	// 2 adds + 3 updates
	assert.Len(t, store.VisitHistory(), 5)
}

func TestCustomersAreNewestFirst(t *testing.T) {
	store, _ := newTestStore()

	older := sampleCustomer()
	older.CustomerName = "First"
	newer := sampleCustomer()
	newer.CustomerName = "Second"

	_, err := store.AddCustomer(older)
	require.NoError(t, err)
	_, err = store.AddCustomer(newer)
	require.NoError(t, err)

	customers := store.Customers()
	require.Len(t, customers, 2)
	assert.Equal(t, "Second", customers[0].CustomerName)
	assert.Equal(t, "First", customers[1].CustomerName)
}

func TestTaskLifecycle(t *testing.T) {
	store, _ := newTestStore()

	added, err := store.AddTask(Task{
		TaskTitle:  "Collect documents",
		DateTime:   "2024-06-11T09:00:00+05:30",
		Priority:   PriorityHigh,
		IsComplete: true, // must be forced false on add
	})
	require.NoError(t, err)
	assert.Equal(t, "task_1", added.ID)
	assert.False(t, added.IsComplete)

	added.Description = "PAN and address proof"
	require.NoError(t, store.UpdateTask(added))
	got, ok := store.TaskByID(added.ID)
	require.True(t, ok)
	assert.Equal(t, "PAN and address proof", got.Description)

	store.ToggleTaskComplete(added.ID)
	got, _ = store.TaskByID(added.ID)
	assert.True(t, got.IsComplete)

	store.ToggleTaskComplete(added.ID)
	got, _ = store.TaskByID(added.ID)
	assert.False(t, got.IsComplete)

	store.DeleteTask(added.ID)
	_, ok = store.TaskByID(added.ID)
	assert.False(t, ok)

	// Deleting and toggling absent ids are no-ops
	store.DeleteTask(added.ID)
	store.ToggleTaskComplete(added.ID)
	assert.Empty(t, store.Tasks())
}

func TestAddTaskRequiresTitle(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.AddTask(Task{Description: "no title"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, store.Tasks())
}

func TestAddProductTrimsAndDedupes(t *testing.T) {
	store, _ := newTestStore()

	store.AddProduct("  Loan  ")
	store.AddProduct("Loan")
	store.AddProduct("   ")

	assert.Equal(t, []string{"Product A", "Product B", "Loan"}, store.Products())
}

func TestRemoveProduct(t *testing.T) {
	store, _ := newTestStore()

	store.RemoveProduct("Product A")
	assert.Equal(t, []string{"Product B"}, store.Products())

	// Removing an absent entry is a no-op
	store.RemoveProduct("Product A")
	assert.Equal(t, []string{"Product B"}, store.Products())
}

func TestUpdateSettingsMergesPartially(t *testing.T) {
	store, _ := newTestStore()

	name := "Ravi"
	store.UpdateSettings(SettingsPatch{UserName: &name})

	settings := store.Settings()
	assert.Equal(t, "Ravi", settings.UserName)
	assert.Equal(t, "09:00", settings.DefaultReminderTime)

	reminder := "08:15"
	store.UpdateSettings(SettingsPatch{DefaultReminderTime: &reminder})
	settings = store.Settings()
	assert.Equal(t, "Ravi", settings.UserName)
	assert.Equal(t, "08:15", settings.DefaultReminderTime)
}

func TestDeleteAllDataKeepsConfiguration(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.AddCustomer(sampleCustomer())
	require.NoError(t, err)
	_, err = store.AddTask(Task{TaskTitle: "Call back", DateTime: "2024-06-11T09:00:00Z"})
	require.NoError(t, err)
	name := "Ravi"
	store.UpdateSettings(SettingsPatch{UserName: &name})

	store.DeleteAllData()

	assert.Empty(t, store.Customers())
	assert.Empty(t, store.Tasks())
	assert.Empty(t, store.VisitHistory())
	assert.Len(t, store.Products(), 2)
	assert.Equal(t, "Ravi", store.Settings().UserName)
}

func TestStateSurvivesReload(t *testing.T) {
	backend := storage.NewMemory()

	store := New(backend, fixedClock(testTime), sequentialIDs())
	added, err := store.AddCustomer(sampleCustomer())
	require.NoError(t, err)
	store.AddProduct("Loan")

	reloaded := New(backend, fixedClock(testTime), sequentialIDs())
	got, ok := reloaded.CustomerByID(added.ID)
	require.True(t, ok)
	assert.Equal(t, added, got)
	assert.Len(t, reloaded.VisitHistory(), 1)
	assert.Equal(t, []string{"Product A", "Product B", "Loan"}, reloaded.Products())
}

func TestLoadCorruptCollectionFallsBackToDefault(t *testing.T) {
	backend := storage.NewMemory()
	require.NoError(t, backend.Write(storage.KeyCustomers, "{not json"))
	require.NoError(t, backend.Write(storage.KeyProducts, "also not json"))

	store := New(backend, fixedClock(testTime), sequentialIDs())

	assert.Empty(t, store.Customers())
	assert.Equal(t, []string{"Product A", "Product B"}, store.Products())
	assert.Equal(t, "Salesperson", store.Settings().UserName)
	assert.Equal(t, "09:00", store.Settings().DefaultReminderTime)
}

func TestWriteFailureDoesNotBlockMutation(t *testing.T) {
	store, backend := newTestStore()
	backend.WriteErr = errors.New("disk full")

	added, err := store.AddCustomer(sampleCustomer())
	require.NoError(t, err)

	// The session still sees the new state even though nothing was
	// durably written
	_, ok := store.CustomerByID(added.ID)
	assert.True(t, ok)
}

func TestSubscribeNotifiedOnMutation(t *testing.T) {
	store, _ := newTestStore()

	var notified int
	store.Subscribe(func() { notified++ })

	_, err := store.AddCustomer(sampleCustomer())
	require.NoError(t, err)
	assert.Equal(t, 1, notified)

	store.AddProduct("Loan")
	assert.Equal(t, 2, notified)
}

type recordingSink struct {
	intentions []ReminderIntention
}

func (r *recordingSink) Schedule(intention ReminderIntention) {
	r.intentions = append(r.intentions, intention)
}

func TestReminderIntentions(t *testing.T) {
	sink := &recordingSink{}
	store, _ := newTestStore(WithReminderSink(sink))

	_, err := store.AddCustomer(sampleCustomer())
	require.NoError(t, err)
	require.Len(t, sink.intentions, 1)
	assert.Equal(t, ReminderIntention{Subject: "visit", Name: "Asha Rao", Date: "2024-06-12", Time: "10:30"}, sink.intentions[0])

	// An "anytime" visit falls back to the default reminder time
	anytime := sampleCustomer()
	anytime.NextVisitTime = ""
	_, err = store.AddCustomer(anytime)
	require.NoError(t, err)
	require.Len(t, sink.intentions, 2)
	assert.Equal(t, "09:00", sink.intentions[1].Time)

	_, err = store.AddTask(Task{TaskTitle: "Call branch", DateTime: "2024-06-11T15:30:00+05:30", SetReminder: true})
	require.NoError(t, err)
	require.Len(t, sink.intentions, 3)
	assert.Equal(t, "task", sink.intentions[2].Subject)
	assert.Equal(t, "Call branch", sink.intentions[2].Name)

	// No reminder requested, no intention
	_, err = store.AddTask(Task{TaskTitle: "Quiet task", DateTime: "2024-06-11T15:30:00+05:30"})
	require.NoError(t, err)
	assert.Len(t, sink.intentions, 3)
}
