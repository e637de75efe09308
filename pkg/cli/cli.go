package cli

import (
	"flag"

	"sdiary/pkg/commands"
	"sdiary/pkg/state"
)

// Args represents parsed command line arguments
type Args struct {
	ConfigPath string
	Verbose    bool

	// Task operations
	AddTask  string
	DateFlag string
	TimeFlag string

	// Import/Export operations
	ExportFile string
	ImportFile string
	AllFlag    bool

	// Destructive operations
	PurgeFlag bool
	YesFlag   bool
}

// ParseArgs parses command line arguments and returns Args struct
func ParseArgs() *Args {
	args := &Args{}

	// Define command line flags
	flag.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	flag.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")

	// Task operations
	flag.StringVar(&args.AddTask, "add", "", "Add a new task")
	flag.StringVar(&args.DateFlag, "date", "", "Date for task (YYYY-MM-DD format)")
	flag.StringVar(&args.TimeFlag, "time", "", "Time for task (HH:MM format)")

	// Import/Export operations
	flag.StringVar(&args.ExportFile, "export", "", "Export customers to a CSV file (empty value with -all for the dated default name)")
	flag.StringVar(&args.ImportFile, "import", "", "Import customers from an exported CSV file")
	flag.BoolVar(&args.AllFlag, "all", false, "Use the full-export filename pattern")

	// Destructive operations
	flag.BoolVar(&args.PurgeFlag, "purge", false, "Delete all customers, tasks and visit history")
	flag.BoolVar(&args.YesFlag, "yes", false, "Skip confirmation")

	flag.Parse()
	return args
}

// HandleCommands processes CLI commands and returns true if a command was handled
func HandleCommands(store *state.Store, args *Args) bool {
	if args.AddTask != "" {
		commands.HandleAddTask(store, args.AddTask, args.DateFlag, args.TimeFlag)
		return true
	}

	if args.ExportFile != "" || args.AllFlag {
		commands.HandleExportCommand(store, args.ExportFile, args.AllFlag)
		return true
	}

	if args.ImportFile != "" {
		commands.HandleImportCommand(store, args.ImportFile)
		return true
	}

	if args.PurgeFlag {
		commands.HandlePurgeCommand(store, args.YesFlag)
		return true
	}

	// No CLI command was handled
	return false
}
