package commands

import (
	"fmt"
	"strings"

	"sdiary/pkg/state"
)

// HandlePurgeCommand processes the --purge command: it clears customers,
// tasks and visit history. Products and settings are configuration and are
// kept. There is no undo, so a confirmation is required unless --yes.
func HandlePurgeCommand(store *state.Store, skipConfirm bool) {
	if !skipConfirm {
		fmt.Print("Delete all customers, tasks and visit history? This cannot be undone. (y/N): ")
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	store.DeleteAllData()
	fmt.Println("All customers, tasks and visit history deleted.")
}
