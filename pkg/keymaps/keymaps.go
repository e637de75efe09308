package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

var KeyDefinitions = map[string]KeyDefinition{
	"ShowHelp":       {"?", "show/hide key help"},
	"QuitApp":        {"q,ctrl+c", "quit"},
	"NextScreen":     {"tab", "next screen"},
	"PrevScreen":     {"shift+tab", "previous screen"},
	"AddCustomer":    {"a", "add customer visit"},
	"AddTask":        {"n", "add task"},
	"Edit":           {"e", "edit selected entry"},
	"Delete":         {"d", "delete selected task"},
	"ToggleComplete": {"space", "toggle task complete"},
	"Search":         {"/", "search customers"},
	"Filter":         {"f", "filter customers"},
	"Export":         {"x", "export customers to CSV"},
	"Select":         {"enter", "open selected entry"},
	"Back":           {"esc", "back"},
}

type KeyMap struct {
	ShowHelp       key.Binding
	QuitApp        key.Binding
	NextScreen     key.Binding
	PrevScreen     key.Binding
	AddCustomer    key.Binding
	AddTask        key.Binding
	Edit           key.Binding
	Delete         key.Binding
	ToggleComplete key.Binding
	Search         key.Binding
	Filter         key.Binding
	Export         key.Binding
	Select         key.Binding
	Back           key.Binding
}

func BuildKeyMap(configOverrides map[string]string) KeyMap {
	km := KeyMap{}
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := configOverrides[action]; exists && override != "" {
			keyStr = override
		}

		switch action {
		case "ShowHelp":
			km.ShowHelp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "QuitApp":
			km.QuitApp = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "NextScreen":
			km.NextScreen = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "PrevScreen":
			km.PrevScreen = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AddCustomer":
			km.AddCustomer = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "AddTask":
			km.AddTask = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "Edit":
			km.Edit = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "Delete":
			km.Delete = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "ToggleComplete":
			km.ToggleComplete = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "Search":
			km.Search = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "Filter":
			km.Filter = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "Export":
			km.Export = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "Select":
			km.Select = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		case "Back":
			km.Back = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		}
	}
	return km
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if keyStr == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	keys := strings.Split(keyStr, ",")
	for i, k := range keys {
		keys[i] = strings.TrimSpace(k)
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}
