package state

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Derived views consumed by the screens. Everything here is computed on
// demand from the in-memory collections; nothing is stored.

// TodaysVisits returns customers whose next visit falls on the current
// calendar date, earliest visit time first
func (s *Store) TodaysVisits() []Customer {
	return s.VisitsOn(s.now().Format(DateLayout))
}

// VisitsOn returns customers whose next visit falls on the given ISO date,
// earliest visit time first
func (s *Store) VisitsOn(date string) []Customer {
	s.mu.Lock()
	var visits []Customer
	for _, c := range s.customers {
		if c.NextVisitDate == date {
			visits = append(visits, c)
		}
	}
	s.mu.Unlock()

	sortByVisitTime(visits)
	return visits
}

// VisitSchedule partitions upcoming visits by how soon they are due
type VisitSchedule struct {
	Today    []Customer
	Tomorrow []Customer
	Later    []Customer
}

// UpcomingVisits partitions customers with a next visit date of today or
// later into today / tomorrow / later, each sorted by visit time. The
// comparisons are plain string comparisons on zero-padded ISO dates, which
// keeps the grouping immune to timezone parsing quirks.
func (s *Store) UpcomingVisits() VisitSchedule {
	now := s.now()
	today := now.Format(DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(DateLayout)

	s.mu.Lock()
	var schedule VisitSchedule
	for _, c := range s.customers {
		switch {
		case c.NextVisitDate == "":
		case c.NextVisitDate == today:
			schedule.Today = append(schedule.Today, c)
		case c.NextVisitDate == tomorrow:
			schedule.Tomorrow = append(schedule.Tomorrow, c)
		case c.NextVisitDate > tomorrow:
			schedule.Later = append(schedule.Later, c)
		}
	}
	s.mu.Unlock()

	sortByVisitTime(schedule.Today)
	sortByVisitTime(schedule.Tomorrow)
	sortByVisitTime(schedule.Later)
	return schedule
}

// sortByVisitTime orders visits ascending by the "HH:mm" time string.
// Lexicographic comparison is correct for zero-padded times and puts the
// empty "anytime" entries first.
func sortByVisitTime(visits []Customer) {
	sort.SliceStable(visits, func(i, j int) bool {
		return visits[i].NextVisitTime < visits[j].NextVisitTime
	})
}

// TaskTriage partitions tasks for the to-do screen
type TaskTriage struct {
	Overdue   []Task
	DueToday  []Task
	Upcoming  []Task
	Completed []Task
}

// TriageTasks splits incomplete tasks into overdue (before today's
// midnight), due today, and upcoming (a later day), each soonest first.
// Completed tasks are listed separately, most recent first.
func (s *Store) TriageTasks() TaskTriage {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	s.mu.Lock()
	var triage TaskTriage
	for _, t := range s.tasks {
		if t.IsComplete {
			triage.Completed = append(triage.Completed, t)
			continue
		}

		due, err := parseTaskTime(t.DateTime)
		if err != nil {
			// A task whose timestamp does not parse still has to show
			// up somewhere; treat it as due today.
			triage.DueToday = append(triage.DueToday, t)
			continue
		}

		day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
		switch {
		case due.Before(midnight):
			triage.Overdue = append(triage.Overdue, t)
		case day.Equal(midnight):
			triage.DueToday = append(triage.DueToday, t)
		default:
			triage.Upcoming = append(triage.Upcoming, t)
		}
	}
	s.mu.Unlock()

	sortByDateTime(triage.Overdue, false)
	sortByDateTime(triage.DueToday, false)
	sortByDateTime(triage.Upcoming, false)
	sortByDateTime(triage.Completed, true)
	return triage
}

func sortByDateTime(tasks []Task, descending bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if descending {
			return tasks[i].DateTime > tasks[j].DateTime
		}
		return tasks[i].DateTime < tasks[j].DateTime
	})
}

// parseTaskTime accepts the timestamp formats tasks have been stored with:
// RFC 3339 from the store itself and the shorter form the date-time form
// fields produce
func parseTaskTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", DateLayout} {
		if ts, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// CustomerFilter narrows the customer list. Zero values mean "no filter"
// for each criterion; Search matches the name case-insensitively or the
// mobile number as a raw substring.
type CustomerFilter struct {
	Search   string
	Types    []CustomerType
	Product  string
	DateFrom string
	DateTo   string
}

// FilterCustomers applies the filter, preserving stored order
func (s *Store) FilterCustomers(f CustomerFilter) []Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	search := strings.ToLower(f.Search)
	var matched []Customer
	for _, c := range s.customers {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.CustomerName), search) &&
			!strings.Contains(c.MobileNumber, f.Search) {
			continue
		}
		if len(f.Types) > 0 && !containsType(f.Types, c.CustomerType) {
			continue
		}
		if f.Product != "" && c.Product != f.Product {
			continue
		}
		if f.DateFrom != "" && c.NextVisitDate < f.DateFrom {
			continue
		}
		if f.DateTo != "" && c.NextVisitDate > f.DateTo {
			continue
		}
		matched = append(matched, c)
	}
	return matched
}

func containsType(types []CustomerType, t CustomerType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
