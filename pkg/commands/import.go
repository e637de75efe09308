package commands

import (
	"fmt"
	"os"

	"sdiary/pkg/state"
)

// HandleImportCommand processes --import commands: it reads a CSV file
// previously produced by --export and re-adds every customer. Records get
// fresh ids and visit history entries, exactly as if they were entered by
// hand.
func HandleImportCommand(store *state.Store, filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	customers, err := state.ParseCustomerTable(string(content))
	if err != nil {
		fmt.Printf("Error parsing file: %v\n", err)
		os.Exit(1)
	}

	var added int
	for _, c := range customers {
		if _, err := store.AddCustomer(c); err != nil {
			fmt.Printf("Skipping customer '%s': %v\n", c.CustomerName, err)
			continue
		}
		added++
	}

	fmt.Printf("Successfully imported %d customer(s) from %s\n", added, filename)
}
