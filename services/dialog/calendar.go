// File: dialog/calendar.go
package dialog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

// Calendar navigation values. Paging and the today shortcut are presentation
// affordances: they re-render the calendar but never advance the step. Only an
// actual day selection does.
const (
	calPrev  = "cal:prev"
	calNext  = "cal:next"
	calToday = "cal:today"

	daySelectPrefix = "day:"
	monthLayout     = "2006-01"
)

// handleCalendarNav applies a navigation action to the session's calendar
// month. It reports whether the value was a navigation action at all.
func handleCalendarNav(sess *models.GuestSession, value string) bool {
	month, err := time.Parse(monthLayout, sess.CalendarMonth)
	if err != nil {
		month = monthStart(time.Now())
	}
	switch value {
	case calPrev:
		sess.CalendarMonth = month.AddDate(0, -1, 0).Format(monthLayout)
	case calNext:
		sess.CalendarMonth = month.AddDate(0, 1, 0).Format(monthLayout)
	case calToday:
		sess.CalendarMonth = time.Now().Format(monthLayout)
	default:
		return false
	}
	return true
}

// calendarPrompt renders one month of selectable days plus navigation.
func calendarPrompt(text, month string) *models.Prompt {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		start = monthStart(time.Now())
		month = start.Format(monthLayout)
	}

	daysInMonth := start.AddDate(0, 1, -1).Day()
	options := make([]models.PromptOption, 0, daysInMonth+3)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(start.Year(), start.Month(), day, 0, 0, 0, 0, time.UTC).Format(models.DateLayout)
		options = append(options, models.PromptOption{
			Value: daySelectPrefix + date,
			Label: strconv.Itoa(day),
		})
	}
	options = append(options,
		models.PromptOption{Value: calPrev, Label: "«"},
		models.PromptOption{Value: calToday, Label: "Today"},
		models.PromptOption{Value: calNext, Label: "»"},
	)

	return &models.Prompt{
		Text:    fmt.Sprintf("%s (%s)", text, start.Format("January 2006")),
		Options: options,
	}
}

// selectedDate extracts a calendar-day value from an input event: either a
// day selection or a typed YYYY-MM-DD date. Returns "" when the input is not
// a valid date.
func selectedDate(ev models.InputEvent) string {
	candidate := ""
	switch {
	case len(ev.Value) > len(daySelectPrefix) && ev.Value[:len(daySelectPrefix)] == daySelectPrefix:
		candidate = ev.Value[len(daySelectPrefix):]
	case ev.Kind == models.InputText:
		candidate = ev.Text
	}
	if candidate == "" {
		return ""
	}
	if _, err := time.Parse(models.DateLayout, candidate); err != nil {
		return ""
	}
	return candidate
}

func monthOf(date string) string {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return currentMonth()
	}
	return d.Format(monthLayout)
}

func currentMonth() string {
	return time.Now().Format(monthLayout)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
