package commands

import (
	"fmt"
	"os"
	"time"

	"sdiary/pkg/state"
)

// HandleAddTask processes the --add command
func HandleAddTask(store *state.Store, title, dateStr, timeStr string) {
	if dateStr == "" {
		dateStr = time.Now().Format(state.DateLayout)
	}
	if _, err := time.Parse(state.DateLayout, dateStr); err != nil {
		fmt.Printf("Error parsing date: %v\n", err)
		os.Exit(1)
	}

	if timeStr == "" {
		timeStr = store.Settings().DefaultReminderTime
	}
	if _, err := time.Parse(state.TimeLayout, timeStr); err != nil {
		fmt.Printf("Error parsing time: %v\n", err)
		os.Exit(1)
	}

	due, _ := time.ParseInLocation(state.DateLayout+"T"+state.TimeLayout, dateStr+"T"+timeStr, time.Local)

	task, err := store.AddTask(state.Task{
		TaskTitle:   title,
		DateTime:    due.Format(time.RFC3339),
		Priority:    state.PriorityMedium,
		SetReminder: true,
	})
	if err != nil {
		fmt.Printf("Error adding task: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Task added: %s (due %s %s)\n", task.TaskTitle, dateStr, timeStr)
}
