package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"sdiary/pkg/state"
)

var (
	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("205")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("237")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

var screenTitles = map[Screen]string{
	HomeScreen:      "Sales Dairy",
	CustomersScreen: "Customers",
	ScheduleScreen:  "Upcoming Schedule",
	TasksScreen:     "To-Do List",
	SettingsScreen:  "Settings",
}

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder

	switch m.mode {
	case CustomerFormMode:
		title := "Add New Visit"
		if m.editingID != "" {
			title = "Edit Visit"
		}
		sb.WriteString(sectionStyle.Render(title))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm(m.formInputs))
		sb.WriteString("\n\n")
		sb.WriteString(statusBarStyle.Render("Tab: next field • Enter: submit • Esc: cancel"))

	case TaskFormMode:
		title := "Add New Task"
		if m.editingID != "" {
			title = "Edit Task"
		}
		sb.WriteString(sectionStyle.Render(title))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm(m.formInputs))
		sb.WriteString("\n\n")
		sb.WriteString(statusBarStyle.Render("Tab: next field • Enter: submit • Esc: cancel"))

	case FilterMode:
		sb.WriteString(sectionStyle.Render("Filter Customers"))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm(m.filterInputs))
		sb.WriteString("\n\n")
		sb.WriteString(statusBarStyle.Render("Tab: next field • Enter: apply • Esc: cancel"))

	case DetailMode:
		sb.WriteString(m.renderCustomerDetail())

	case DeleteTaskConfirmMode:
		sb.WriteString(errorStyle.Render("Delete Task"))
		sb.WriteString("\n\n")
		if task, ok := m.store.TaskByID(m.deletingID); ok {
			sb.WriteString(fmt.Sprintf("Are you sure you want to delete this task?\n\nTitle: %s\n", task.TaskTitle))
		}
		sb.WriteString("\n")
		sb.WriteString(sectionStyle.Render("Press Y to confirm, N to cancel"))

	case PurgeConfirmMode:
		sb.WriteString(errorStyle.Render("Delete All Data"))
		sb.WriteString("\n\n")
		sb.WriteString("Are you sure you want to delete all customers, tasks and visit history?\n")
		sb.WriteString("Products and settings are kept. This action cannot be undone.\n\n")
		sb.WriteString(sectionStyle.Render("Press Y to confirm, N to cancel"))

	case HelpViewMode:
		sb.WriteString(m.renderHelp())

	default:
		sb.WriteString(titleBarStyle.Render(" " + screenTitles[m.screen] + " "))
		sb.WriteString("\n\n")

		switch m.screen {
		case HomeScreen:
			sb.WriteString(m.renderHome())
		case CustomersScreen:
			sb.WriteString(m.renderCustomers())
		case ScheduleScreen:
			sb.WriteString(m.renderSchedule())
		case TasksScreen:
			sb.WriteString(m.renderTasks())
		case SettingsScreen:
			sb.WriteString(m.renderSettings())
		}

		sb.WriteString("\n")
		sb.WriteString(statusBarStyle.Render("tab: switch screen • a: new visit • n: new task • ?: help • q: quit"))
	}

	// Toasts and errors always render at the bottom
	if toastLine := m.renderToasts(); toastLine != "" {
		sb.WriteString("\n")
		sb.WriteString(toastLine)
	}
	if m.err != nil {
		sb.WriteString(fmt.Sprintf("\n\nError: %v", m.err))
	}

	return sb.String()
}

func (m Model) renderHome() string {
	var sb strings.Builder

	visits := m.store.TodaysVisits()
	settings := m.store.Settings()

	sb.WriteString(fmt.Sprintf("Hello %s, you have ", settings.UserName))
	sb.WriteString(accentStyle.Render(fmt.Sprintf("%d visit(s)", len(visits))))
	sb.WriteString(" scheduled today.\n\n")

	sb.WriteString(sectionStyle.Render("Today's Schedule"))
	sb.WriteString("\n")
	if len(visits) == 0 {
		sb.WriteString(faintStyle.Render("No visits scheduled for today.\n"))
		return sb.String()
	}
	for _, visit := range visits {
		sb.WriteString(fmt.Sprintf("  %s  %s", accentStyle.Render(formatClock(visit.NextVisitTime)), visit.CustomerName))
		if visit.Remark != "" {
			sb.WriteString(faintStyle.Render("  " + truncate(visit.Remark, 40)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderCustomers() string {
	var sb strings.Builder

	if m.mode == SearchMode || m.searchTerm != "" {
		sb.WriteString(m.searchInput.View())
		sb.WriteString("\n")
	}
	if desc := describeFilter(m.filter); desc != "" {
		sb.WriteString(faintStyle.Render(desc))
		sb.WriteString("\n")
	}

	if len(m.customers) == 0 {
		sb.WriteString(faintStyle.Render("No customers found.\n"))
		return sb.String()
	}

	sb.WriteString(m.customersTable.View())
	sb.WriteString("\n")
	sb.WriteString(faintStyle.Render("enter: details • e: edit • /: search • f: filter • x: export"))
	return sb.String()
}

func describeFilter(f state.CustomerFilter) string {
	var parts []string
	if len(f.Types) > 0 {
		var types []string
		for _, t := range f.Types {
			types = append(types, string(t))
		}
		parts = append(parts, "type "+strings.Join(types, "/"))
	}
	if f.Product != "" {
		parts = append(parts, "product "+f.Product)
	}
	if f.DateFrom != "" || f.DateTo != "" {
		parts = append(parts, fmt.Sprintf("visits %s..%s", f.DateFrom, f.DateTo))
	}
	if len(parts) == 0 {
		return ""
	}
	return "filter: " + strings.Join(parts, ", ")
}

func (m Model) renderCustomerDetail() string {
	var sb strings.Builder

	customer, ok := m.store.CustomerByID(m.detailID)
	if !ok {
		sb.WriteString(errorStyle.Render("Customer not found."))
		return sb.String()
	}

	sb.WriteString(titleBarStyle.Render(" Customer Details "))
	sb.WriteString("\n\n")
	sb.WriteString(sectionStyle.Render(customer.CustomerName))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s  (call: tel:%s)\n\n", customer.MobileNumber, customer.MobileNumber))

	infoRow := func(label, value string) {
		if value == "" {
			value = "-"
		}
		sb.WriteString(faintStyle.Render(label+": ") + value + "\n")
	}
	infoRow("Product", customer.Product)
	infoRow("Customer Type", string(customer.CustomerType))
	infoRow("Reference", customer.ReferenceBy)
	infoRow("Next Visit", strings.TrimSpace(customer.NextVisitDate+" "+formatClock(customer.NextVisitTime)))
	infoRow("Last Remark", customer.Remark)

	sb.WriteString("\n")
	sb.WriteString(sectionStyle.Render("Visit History"))
	sb.WriteString("\n")
	history := m.store.VisitHistoryForCustomer(customer.ID)
	if len(history) == 0 {
		sb.WriteString(faintStyle.Render("No visit history.\n"))
	}
	for _, visit := range history {
		sb.WriteString(accentStyle.Render(visit.VisitDate))
		if visit.Remark != "" {
			sb.WriteString("  " + visit.Remark)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(statusBarStyle.Render("e: edit / log new visit • esc: back"))
	return sb.String()
}

func (m Model) renderSchedule() string {
	var sb strings.Builder

	schedule := m.store.UpcomingVisits()
	section := func(title string, visits []state.Customer) {
		if len(visits) == 0 {
			return
		}
		sb.WriteString(sectionStyle.Render(title))
		sb.WriteString("\n")
		for _, visit := range visits {
			sb.WriteString(fmt.Sprintf("  %s  %s  %s\n",
				visit.NextVisitDate,
				accentStyle.Render(formatClock(visit.NextVisitTime)),
				visit.CustomerName))
		}
		sb.WriteString("\n")
	}
	section("Today", schedule.Today)
	section("Tomorrow", schedule.Tomorrow)
	section("Upcoming", schedule.Later)

	if len(schedule.Today)+len(schedule.Tomorrow)+len(schedule.Later) == 0 {
		sb.WriteString(faintStyle.Render("No upcoming visits scheduled.\n"))
	}
	return sb.String()
}

func (m Model) renderTasks() string {
	var sb strings.Builder

	if len(m.taskLines) == 0 {
		sb.WriteString(faintStyle.Render("No pending tasks. Great job!\n"))
		return sb.String()
	}

	for i, line := range m.taskLines {
		if !line.isTask {
			sb.WriteString(sectionStyle.Render(line.header))
			sb.WriteString("\n")
			continue
		}

		status := "[ ]"
		if line.task.IsComplete {
			status = "[x]"
		}
		date, clock := splitTimestamp(line.task.DateTime)
		text := fmt.Sprintf("%s %s  %s %s  (%s)", status, line.task.TaskTitle, date, clock, line.task.Priority)
		if i == m.taskCursor {
			sb.WriteString("  " + selectedStyle.Render(text))
		} else {
			sb.WriteString("  " + text)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(faintStyle.Render("space: toggle • e: edit • d: delete"))
	return sb.String()
}

func (m Model) renderSettings() string {
	var sb strings.Builder

	settings := m.store.Settings()
	sb.WriteString(sectionStyle.Render("Profile"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  User Name: %s\n", settings.UserName))
	sb.WriteString(fmt.Sprintf("  Default Reminder Time: %s\n\n", settings.DefaultReminderTime))

	sb.WriteString(sectionStyle.Render("Manage Products"))
	sb.WriteString("\n")
	for i, product := range m.store.Products() {
		if i == m.productCursor {
			sb.WriteString("  " + selectedStyle.Render(product) + "\n")
		} else {
			sb.WriteString("  " + product + "\n")
		}
	}
	if m.mode == ProductInputMode {
		sb.WriteString("  " + m.productInput.View() + "\n")
	}
	if m.mode == UserNameInputMode {
		sb.WriteString("\n  " + m.userNameInput.View() + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(sectionStyle.Render("Data Management"))
	sb.WriteString("\n")
	sb.WriteString(faintStyle.Render("  u: edit user name • p: add product • d: remove product\n"))
	sb.WriteString(faintStyle.Render("  X: export all to CSV • D: delete all data\n"))
	return sb.String()
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(sectionStyle.Render("Key Bindings"))
	sb.WriteString("\n\n")

	bindings := []struct{ keys, help string }{
		{m.keyMap.QuitApp.Help().Key, m.keyMap.QuitApp.Help().Desc},
		{m.keyMap.NextScreen.Help().Key, m.keyMap.NextScreen.Help().Desc},
		{m.keyMap.PrevScreen.Help().Key, m.keyMap.PrevScreen.Help().Desc},
		{m.keyMap.AddCustomer.Help().Key, m.keyMap.AddCustomer.Help().Desc},
		{m.keyMap.AddTask.Help().Key, m.keyMap.AddTask.Help().Desc},
		{m.keyMap.Edit.Help().Key, m.keyMap.Edit.Help().Desc},
		{m.keyMap.Delete.Help().Key, m.keyMap.Delete.Help().Desc},
		{m.keyMap.ToggleComplete.Help().Key, m.keyMap.ToggleComplete.Help().Desc},
		{m.keyMap.Search.Help().Key, m.keyMap.Search.Help().Desc},
		{m.keyMap.Filter.Help().Key, m.keyMap.Filter.Help().Desc},
		{m.keyMap.Export.Help().Key, m.keyMap.Export.Help().Desc},
		{m.keyMap.Select.Help().Key, m.keyMap.Select.Help().Desc},
		{m.keyMap.Back.Help().Key, m.keyMap.Back.Help().Desc},
	}
	for _, b := range bindings {
		sb.WriteString(fmt.Sprintf("  %-12s %s\n", b.keys, b.help))
	}

	sb.WriteString("\n")
	sb.WriteString(statusBarStyle.Render("press any key to close"))
	return sb.String()
}

// renderForm renders a column of labeled inputs
func (m Model) renderForm(inputs []textinput.Model) string {
	var sb strings.Builder
	for i, input := range inputs {
		label := ""
		if i < len(m.formLabels) {
			label = m.formLabels[i]
		}
		sb.WriteString(faintStyle.Render(label))
		sb.WriteString("\n")
		sb.WriteString(input.View())
		if i < len(inputs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return formStyle.Render(sb.String())
}

func (m Model) renderToasts() string {
	toasts := m.store.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	var parts []string
	for _, toast := range toasts {
		if toast.Type == state.ToastError {
			parts = append(parts, errorStyle.Render(toast.Message))
		} else {
			parts = append(parts, successStyle.Render(toast.Message))
		}
	}
	return strings.Join(parts, "  ")
}
