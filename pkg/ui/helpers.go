package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"sdiary/pkg/state"
)

// refresh re-reads everything the current screens render from the store
func (m *Model) refresh() {
	m.refreshCustomers()
	m.rebuildTaskLines()

	if m.productCursor >= len(m.store.Products()) {
		m.productCursor = 0
	}
}

// refreshCustomers applies the search term and filters and rebuilds the
// customer table rows
func (m *Model) refreshCustomers() {
	filter := m.filter
	filter.Search = m.searchTerm
	m.customers = m.store.FilterCustomers(filter)

	rows := make([]table.Row, 0, len(m.customers))
	for _, c := range m.customers {
		visit := c.NextVisitDate
		if visit == "" {
			visit = "-"
		}
		rows = append(rows, table.Row{c.CustomerName, c.MobileNumber, visit})
	}
	m.customersTable.SetRows(rows)

	if cursor := m.customersTable.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.customersTable.SetCursor(len(rows) - 1)
	}
}

// rebuildTaskLines flattens the triage sections into renderable rows
func (m *Model) rebuildTaskLines() {
	triage := m.store.TriageTasks()

	var lines []taskLine
	appendSection := func(title string, tasks []state.Task) {
		if len(tasks) == 0 {
			return
		}
		lines = append(lines, taskLine{header: title})
		for _, t := range tasks {
			lines = append(lines, taskLine{task: t, isTask: true})
		}
	}
	appendSection("Overdue", triage.Overdue)
	appendSection("Today", triage.DueToday)
	appendSection("Upcoming", triage.Upcoming)
	appendSection("Completed", triage.Completed)

	m.taskLines = lines
	if m.taskCursor >= len(lines) {
		m.taskCursor = 0
	}
	m.snapTaskCursor(1)
}

// snapTaskCursor moves the cursor off section headers, searching in the
// given direction
func (m *Model) snapTaskCursor(direction int) {
	if len(m.taskLines) == 0 {
		return
	}
	for i := m.taskCursor; i >= 0 && i < len(m.taskLines); i += direction {
		if m.taskLines[i].isTask {
			m.taskCursor = i
			return
		}
	}
	// Nothing in that direction, scan the other way
	for i := m.taskCursor; i >= 0 && i < len(m.taskLines); i -= direction {
		if m.taskLines[i].isTask {
			m.taskCursor = i
			return
		}
	}
}

func (m *Model) moveTaskCursor(direction int) {
	next := m.taskCursor + direction
	for next >= 0 && next < len(m.taskLines) {
		if m.taskLines[next].isTask {
			m.taskCursor = next
			return
		}
		next += direction
	}
}

// selectedTask returns the task under the cursor, if any
func (m *Model) selectedTask() (state.Task, bool) {
	if m.taskCursor < len(m.taskLines) && m.taskLines[m.taskCursor].isTask {
		return m.taskLines[m.taskCursor].task, true
	}
	return state.Task{}, false
}

// selectedCustomer returns the customer under the table cursor, if any
func (m *Model) selectedCustomer() (state.Customer, bool) {
	idx := m.customersTable.Cursor()
	if idx >= 0 && idx < len(m.customers) {
		return m.customers[idx], true
	}
	return state.Customer{}, false
}

// submitCustomerForm validates the form and applies the add or update
func (m *Model) submitCustomerForm() {
	customer := state.Customer{
		ID:            m.editingID,
		CustomerName:  strings.TrimSpace(m.formInputs[0].Value()),
		MobileNumber:  strings.TrimSpace(m.formInputs[1].Value()),
		ReferenceBy:   strings.TrimSpace(m.formInputs[2].Value()),
		Product:       strings.TrimSpace(m.formInputs[3].Value()),
		Remark:        strings.TrimSpace(m.formInputs[5].Value()),
		NextVisitDate: strings.TrimSpace(m.formInputs[6].Value()),
		NextVisitTime: strings.TrimSpace(m.formInputs[7].Value()),
	}

	switch strings.ToUpper(strings.TrimSpace(m.formInputs[4].Value())) {
	case string(state.NTB):
		customer.CustomerType = state.NTB
	default:
		customer.CustomerType = state.ETB
	}

	var err error
	if m.editingID != "" {
		err = m.store.UpdateCustomer(customer)
	} else {
		_, err = m.store.AddCustomer(customer)
	}

	if err != nil {
		// Leave the form open so the input can be corrected
		m.store.AddToast(err.Error(), state.ToastError)
		return
	}

	if m.editingID != "" {
		m.store.AddToast("Visit updated successfully!", state.ToastSuccess)
	} else {
		m.store.AddToast("Visit saved successfully!", state.ToastSuccess)
	}
	m.mode = NormalMode
	m.refresh()
}

// submitTaskForm validates the form and applies the add or update
func (m *Model) submitTaskForm() {
	dateStr := strings.TrimSpace(m.formInputs[2].Value())
	clockStr := strings.TrimSpace(m.formInputs[3].Value())
	if clockStr == "" {
		clockStr = m.store.Settings().DefaultReminderTime
	}

	due, err := time.ParseInLocation(state.DateLayout+"T"+state.TimeLayout, dateStr+"T"+clockStr, time.Local)
	if err != nil {
		m.store.AddToast("Invalid date or time format.", state.ToastError)
		return
	}

	task := state.Task{
		ID:          m.editingID,
		TaskTitle:   strings.TrimSpace(m.formInputs[0].Value()),
		Description: strings.TrimSpace(m.formInputs[1].Value()),
		DateTime:    due.Format(time.RFC3339),
		Priority:    parsePriority(m.formInputs[4].Value()),
		SetReminder: strings.HasPrefix(strings.ToLower(strings.TrimSpace(m.formInputs[5].Value())), "y"),
	}

	if m.editingID != "" {
		existing, ok := m.store.TaskByID(m.editingID)
		if ok {
			task.IsComplete = existing.IsComplete
		}
		err = m.store.UpdateTask(task)
	} else {
		_, err = m.store.AddTask(task)
	}

	if err != nil {
		m.store.AddToast(err.Error(), state.ToastError)
		return
	}

	if m.editingID != "" {
		m.store.AddToast("Task updated!", state.ToastSuccess)
	} else {
		m.store.AddToast("Task saved!", state.ToastSuccess)
	}
	m.mode = NormalMode
	m.refresh()
}

// applyFilter reads the filter inputs back into the query filter
func (m *Model) applyFilter() {
	var types []state.CustomerType
	for _, part := range strings.Split(m.filterInputs[0].Value(), ",") {
		switch strings.ToUpper(strings.TrimSpace(part)) {
		case string(state.ETB):
			types = append(types, state.ETB)
		case string(state.NTB):
			types = append(types, state.NTB)
		}
	}

	m.filter = state.CustomerFilter{
		Types:    types,
		Product:  strings.TrimSpace(m.filterInputs[1].Value()),
		DateFrom: strings.TrimSpace(m.filterInputs[2].Value()),
		DateTo:   strings.TrimSpace(m.filterInputs[3].Value()),
	}
	m.mode = NormalMode
	m.refreshCustomers()
}

func parsePriority(value string) state.TaskPriority {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return state.PriorityHigh
	case "low":
		return state.PriorityLow
	default:
		return state.PriorityMedium
	}
}

// focusFormInput moves focus between form inputs
func (m *Model) focusFormInput(index int) {
	inputs := m.formInputs
	if m.mode == FilterMode {
		inputs = m.filterInputs
	}
	if len(inputs) == 0 {
		return
	}
	m.activeInput = (index + len(inputs)) % len(inputs)
	for i := range inputs {
		if i == m.activeInput {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

// splitTimestamp breaks an RFC 3339 timestamp into form date and time values
func splitTimestamp(value string) (string, string) {
	ts, err := time.ParseInLocation(time.RFC3339, value, time.Local)
	if err != nil {
		return value, ""
	}
	return ts.Format(state.DateLayout), ts.Format(state.TimeLayout)
}

// formatClock renders a "15:04" time the way the original app did, as
// 12-hour with AM/PM; empty means the visit can happen anytime
func formatClock(clock string) string {
	if clock == "" {
		return "Anytime"
	}
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return clock
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return clock
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%s %s", hour, parts[1], suffix)
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

func joinComma(parts []string) string {
	return strings.Join(parts, ",")
}
