package state

import "sdiary/pkg/utils"

// ReminderIntention describes a notification that should be scheduled:
// what to remind, for whom, and when. In the current scope intentions are
// only logged; a real notification scheduler would consume them here.
type ReminderIntention struct {
	Subject string
	Name    string
	Date    string
	Time    string
}

// ReminderSink receives reminder intentions
type ReminderSink interface {
	Schedule(ReminderIntention)
}

// logSink is the default sink: it records the intention in the debug log
type logSink struct{}

func (logSink) Schedule(r ReminderIntention) {
	utils.Log("reminder intention: %s for %s on %s at %s", r.Subject, r.Name, r.Date, r.Time)
}

// scheduleVisitReminder emits an intention for a customer's next visit.
// When no visit time is set, the settings default fills in.
func (s *Store) scheduleVisitReminder(c Customer) {
	if c.NextVisitDate == "" {
		return
	}

	visitTime := c.NextVisitTime
	if visitTime == "" {
		s.mu.Lock()
		visitTime = s.settings.DefaultReminderTime
		s.mu.Unlock()
	}

	s.reminders.Schedule(ReminderIntention{
		Subject: "visit",
		Name:    c.CustomerName,
		Date:    c.NextVisitDate,
		Time:    visitTime,
	})
}

// scheduleTaskReminder emits an intention for a task with SetReminder on
func (s *Store) scheduleTaskReminder(t Task) {
	date, clock := splitDateTime(t.DateTime)
	s.reminders.Schedule(ReminderIntention{
		Subject: "task",
		Name:    t.TaskTitle,
		Date:    date,
		Time:    clock,
	})
}

func splitDateTime(value string) (string, string) {
	ts, err := parseTaskTime(value)
	if err != nil {
		return value, ""
	}
	return ts.Format(DateLayout), ts.Format(TimeLayout)
}
