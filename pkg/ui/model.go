package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sdiary/pkg/config"
	"sdiary/pkg/keymaps"
	"sdiary/pkg/state"
)

// Screen is one of the top-level screens reachable from the nav cycle
type Screen int

const (
	HomeScreen Screen = iota
	CustomersScreen
	ScheduleScreen
	TasksScreen
	SettingsScreen

	screenCount
)

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	CustomerFormMode
	TaskFormMode
	SearchMode
	FilterMode
	DetailMode
	ProductInputMode
	UserNameInputMode
	DeleteTaskConfirmMode
	PurgeConfirmMode
	HelpViewMode
)

// RefreshMsg asks the UI to re-read the store; the store subscription sends
// it after every state change (including toast expiry)
type RefreshMsg struct{}

// Labels for the customer form, in input order
var customerFormLabels = []string{
	"Customer Name *",
	"Mobile Number *",
	"Reference By",
	"Product",
	"Customer Type (ETB/NTB)",
	"Remark",
	"Next Visit Date (YYYY-MM-DD)",
	"Next Visit Time (HH:MM, empty = anytime)",
}

// Labels for the task form, in input order
var taskFormLabels = []string{
	"Task Title *",
	"Description",
	"Date (YYYY-MM-DD)",
	"Time (HH:MM)",
	"Priority (High/Medium/Low)",
	"Set Reminder (y/n)",
}

// Model represents the application state
type Model struct {
	store         *state.Store
	config        config.Config
	keyMap        keymaps.KeyMap
	width, height int
	err           error

	screen Screen
	mode   InputMode

	// Customers screen state
	customersTable table.Model
	customers      []state.Customer
	searchInput    textinput.Model
	searchTerm     string
	filterInputs   []textinput.Model
	filter         state.CustomerFilter
	detailID       string

	// Tasks screen state
	taskLines  []taskLine
	taskCursor int
	deletingID string

	// Settings screen state
	productCursor int
	productInput  textinput.Model
	userNameInput textinput.Model

	// Form state
	formInputs  []textinput.Model
	formLabels  []string
	activeInput int
	editingID   string
}

// taskLine is one renderable row on the task screen: either a section
// header or a task
type taskLine struct {
	header string
	task   state.Task
	isTask bool
}

// NewModel creates a new UI model with the provided configuration
func NewModel(store *state.Store, cfg config.Config) Model {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Mobile", Width: 14},
		{Title: "Next Visit", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(true)
	t.SetStyles(s)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search by name or number..."
	searchInput.Width = 40

	productInput := textinput.New()
	productInput.Placeholder = "New product name"
	productInput.Width = 30

	userNameInput := textinput.New()
	userNameInput.Placeholder = "Your name"
	userNameInput.Width = 30

	m := Model{
		store:          store,
		config:         cfg,
		keyMap:         keymaps.BuildKeyMap(cfg.KeyMap),
		screen:         HomeScreen,
		mode:           NormalMode,
		customersTable: t,
		searchInput:    searchInput,
		productInput:   productInput,
		userNameInput:  userNameInput,
	}

	m.refresh()
	return m
}

// Init initializes the model (required by Bubble Tea Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// newFormInputs builds a column of text inputs for the given labels with
// the first one focused
func newFormInputs(labels []string) []textinput.Model {
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.Width = 44
		inputs[i] = in
	}
	inputs[0].Focus()
	return inputs
}

// openCustomerForm prepares the form for adding or editing a customer
func (m *Model) openCustomerForm(existing *state.Customer) {
	m.formLabels = customerFormLabels
	m.formInputs = newFormInputs(customerFormLabels)
	m.activeInput = 0
	m.editingID = ""

	products := m.store.Products()
	if len(products) > 0 {
		m.formInputs[3].SetValue(products[0])
	}
	m.formInputs[4].SetValue(string(state.ETB))

	if existing != nil {
		m.editingID = existing.ID
		m.formInputs[0].SetValue(existing.CustomerName)
		m.formInputs[1].SetValue(existing.MobileNumber)
		m.formInputs[2].SetValue(existing.ReferenceBy)
		m.formInputs[3].SetValue(existing.Product)
		m.formInputs[4].SetValue(string(existing.CustomerType))
		m.formInputs[5].SetValue(existing.Remark)
		m.formInputs[6].SetValue(existing.NextVisitDate)
		m.formInputs[7].SetValue(existing.NextVisitTime)
	}

	m.mode = CustomerFormMode
}

// openTaskForm prepares the form for adding or editing a task
func (m *Model) openTaskForm(existing *state.Task) {
	m.formLabels = taskFormLabels
	m.formInputs = newFormInputs(taskFormLabels)
	m.activeInput = 0
	m.editingID = ""

	m.formInputs[2].SetValue(time.Now().Format(state.DateLayout))
	m.formInputs[3].SetValue(m.store.Settings().DefaultReminderTime)
	m.formInputs[4].SetValue(string(state.PriorityMedium))
	m.formInputs[5].SetValue("y")

	if existing != nil {
		m.editingID = existing.ID
		m.formInputs[0].SetValue(existing.TaskTitle)
		m.formInputs[1].SetValue(existing.Description)
		date, clock := splitTimestamp(existing.DateTime)
		m.formInputs[2].SetValue(date)
		m.formInputs[3].SetValue(clock)
		m.formInputs[4].SetValue(string(existing.Priority))
		if existing.SetReminder {
			m.formInputs[5].SetValue("y")
		} else {
			m.formInputs[5].SetValue("n")
		}
	}

	m.mode = TaskFormMode
}

// openFilterForm prepares the customer filter inputs
func (m *Model) openFilterForm() {
	labels := []string{
		"Customer Types (ETB,NTB; empty = all)",
		"Product (exact; empty = all)",
		"Visit Date From (YYYY-MM-DD)",
		"Visit Date To (YYYY-MM-DD)",
	}
	m.filterInputs = newFormInputs(labels)
	m.formLabels = labels
	m.activeInput = 0

	var types []string
	for _, t := range m.filter.Types {
		types = append(types, string(t))
	}
	m.filterInputs[0].SetValue(joinComma(types))
	m.filterInputs[1].SetValue(m.filter.Product)
	m.filterInputs[2].SetValue(m.filter.DateFrom)
	m.filterInputs[3].SetValue(m.filter.DateTo)

	m.mode = FilterMode
}
