package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sdiary/pkg/commands"
	"sdiary/pkg/state"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case RefreshMsg:
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.customersTable.SetWidth(msg.Width - 4)
		if msg.Height > 12 {
			m.customersTable.SetHeight(msg.Height - 10)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case NormalMode:
			return m.updateNormal(msg)

		case CustomerFormMode, TaskFormMode, FilterMode:
			return m.updateForm(msg)

		case SearchMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.searchInput.Blur()
			case "enter":
				m.searchTerm = m.searchInput.Value()
				m.mode = NormalMode
				m.searchInput.Blur()
				m.refreshCustomers()
			default:
				m.searchInput, cmd = m.searchInput.Update(msg)
				cmds = append(cmds, cmd)
				m.searchTerm = m.searchInput.Value()
				m.refreshCustomers()
			}
			return m, tea.Batch(cmds...)

		case DetailMode:
			switch {
			case key.Matches(msg, m.keyMap.Back):
				m.mode = NormalMode
				m.detailID = ""
			case key.Matches(msg, m.keyMap.Edit):
				if customer, ok := m.store.CustomerByID(m.detailID); ok {
					m.openCustomerForm(&customer)
				} else {
					m.store.AddToast("Customer not found", state.ToastError)
					m.mode = NormalMode
				}
			}
			return m, nil

		case ProductInputMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.productInput.Blur()
			case "enter":
				name := m.productInput.Value()
				m.store.AddProduct(name)
				m.store.AddToast("Product added!", state.ToastSuccess)
				m.productInput.Reset()
				m.productInput.Blur()
				m.mode = NormalMode
			default:
				m.productInput, cmd = m.productInput.Update(msg)
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)

		case UserNameInputMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.userNameInput.Blur()
			case "enter":
				name := m.userNameInput.Value()
				m.store.UpdateSettings(state.SettingsPatch{UserName: &name})
				m.store.AddToast("Settings saved.", state.ToastSuccess)
				m.userNameInput.Blur()
				m.mode = NormalMode
			default:
				m.userNameInput, cmd = m.userNameInput.Update(msg)
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)

		case DeleteTaskConfirmMode:
			switch msg.String() {
			case "y", "Y":
				m.store.DeleteTask(m.deletingID)
				m.store.AddToast("Task deleted", state.ToastSuccess)
				m.deletingID = ""
				m.mode = NormalMode
				m.rebuildTaskLines()
			case "n", "N", "esc":
				m.deletingID = ""
				m.mode = NormalMode
			}
			return m, nil

		case PurgeConfirmMode:
			switch msg.String() {
			case "y", "Y":
				m.store.DeleteAllData()
				m.store.AddToast("All data has been deleted.", state.ToastSuccess)
				m.mode = NormalMode
				m.refresh()
			case "n", "N", "esc":
				m.mode = NormalMode
			}
			return m, nil

		case HelpViewMode:
			m.mode = NormalMode
			return m, nil
		}
	}

	if m.mode == NormalMode && m.screen == CustomersScreen {
		m.customersTable, cmd = m.customersTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateNormal handles key presses outside of any form
func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keyMap.QuitApp):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.ShowHelp):
		m.mode = HelpViewMode
		return m, nil

	case key.Matches(msg, m.keyMap.NextScreen):
		m.screen = (m.screen + 1) % screenCount
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.PrevScreen):
		m.screen = (m.screen + screenCount - 1) % screenCount
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.AddCustomer):
		m.openCustomerForm(nil)
		return m, nil

	case key.Matches(msg, m.keyMap.AddTask):
		m.openTaskForm(nil)
		return m, nil
	}

	switch m.screen {
	case CustomersScreen:
		switch {
		case key.Matches(msg, m.keyMap.Search):
			m.mode = SearchMode
			m.searchInput.Focus()
		case key.Matches(msg, m.keyMap.Filter):
			m.openFilterForm()
		case key.Matches(msg, m.keyMap.Export):
			commands.HandleExportCommand(m.store, "", false)
			m.store.AddToast("Data exported successfully!", state.ToastSuccess)
		case key.Matches(msg, m.keyMap.Select):
			if customer, ok := m.selectedCustomer(); ok {
				m.detailID = customer.ID
				m.mode = DetailMode
			}
		case key.Matches(msg, m.keyMap.Edit):
			if customer, ok := m.selectedCustomer(); ok {
				m.openCustomerForm(&customer)
			}
		default:
			m.customersTable, cmd = m.customersTable.Update(msg)
		}
		return m, cmd

	case TasksScreen:
		switch {
		case msg.String() == "up" || msg.String() == "k":
			m.moveTaskCursor(-1)
		case msg.String() == "down" || msg.String() == "j":
			m.moveTaskCursor(1)
		case key.Matches(msg, m.keyMap.ToggleComplete):
			if task, ok := m.selectedTask(); ok {
				m.store.ToggleTaskComplete(task.ID)
				m.rebuildTaskLines()
			}
		case key.Matches(msg, m.keyMap.Edit):
			if task, ok := m.selectedTask(); ok {
				m.openTaskForm(&task)
			}
		case key.Matches(msg, m.keyMap.Delete):
			if task, ok := m.selectedTask(); ok {
				m.deletingID = task.ID
				m.mode = DeleteTaskConfirmMode
			}
		}
		return m, nil

	case SettingsScreen:
		switch msg.String() {
		case "up", "k":
			if m.productCursor > 0 {
				m.productCursor--
			}
		case "down", "j":
			if m.productCursor < len(m.store.Products())-1 {
				m.productCursor++
			}
		case "p":
			m.mode = ProductInputMode
			m.productInput.Focus()
		case "u":
			m.userNameInput.SetValue(m.store.Settings().UserName)
			m.userNameInput.Focus()
			m.mode = UserNameInputMode
		case "d":
			products := m.store.Products()
			if m.productCursor < len(products) {
				m.store.RemoveProduct(products[m.productCursor])
				m.refresh()
			}
		case "X":
			commands.HandleExportCommand(m.store, "", true)
			m.store.AddToast("Data exported successfully!", state.ToastSuccess)
		case "D":
			m.mode = PurgeConfirmMode
		}
		return m, nil
	}

	return m, nil
}

// updateForm handles key presses while a form is open
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	inputs := m.formInputs
	if m.mode == FilterMode {
		inputs = m.filterInputs
	}

	switch msg.String() {
	case "esc":
		m.mode = NormalMode
		if m.screen == CustomersScreen {
			m.refreshCustomers()
		}
		return m, nil

	case "tab", "down":
		m.focusFormInput(m.activeInput + 1)
		return m, nil

	case "shift+tab", "up":
		m.focusFormInput(m.activeInput - 1)
		return m, nil

	case "enter":
		if m.activeInput < len(inputs)-1 {
			m.focusFormInput(m.activeInput + 1)
			return m, nil
		}
		switch m.mode {
		case CustomerFormMode:
			m.submitCustomerForm()
		case TaskFormMode:
			m.submitTaskForm()
		case FilterMode:
			m.applyFilter()
		}
		return m, nil
	}

	if m.activeInput < len(inputs) {
		inputs[m.activeInput], cmd = inputs[m.activeInput].Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
