package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sdiary/pkg/state"
)

// HandleExportCommand processes --export commands. The customer list is
// written in the JSON-quoted CSV format the app has always produced; an
// empty filename picks the dated default name.
func HandleExportCommand(store *state.Store, filename string, all bool) {
	customers := store.Customers()
	if len(customers) == 0 {
		fmt.Println("No customers to export.")
		return
	}

	if filename == "" {
		filename = state.ExportFilename(all, time.Now())
	}

	content, err := state.MarshalTable(customers)
	if err != nil {
		fmt.Printf("Error rendering export: %v\n", err)
		os.Exit(1)
	}

	// Ensure directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully exported %d customer(s) to %s\n", len(customers), filename)
}
