package portal

import (
	"context"
	"testing"
	"time"

	"carewell/models"
	"carewell/services/scheduling"
)

func testCalendar() *Calendar {
	return NewCalendar(time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC))
}

func TestCalendarMonthRange(t *testing.T) {
	c := testCalendar()
	start, end := c.MonthRange()
	if start != "2025-06-01" || end != "2025-06-30" {
		t.Errorf("MonthRange = %q..%q, want 2025-06-01..2025-06-30", start, end)
	}

	c.Cursor = scheduling.MonthCursor{Year: 2024, Month: time.February}
	start, end = c.MonthRange()
	if start != "2024-02-01" || end != "2024-02-29" {
		t.Errorf("leap February range = %q..%q", start, end)
	}
}

func TestCalendarDaysPadding(t *testing.T) {
	c := testCalendar()
	days := c.Days()

	// June 2025 starts on a Sunday: no padding, 30 cells.
	if len(days) != 30 {
		t.Fatalf("June grid has %d cells, want 30", len(days))
	}
	if days[0].Day != 1 {
		t.Errorf("first cell = %+v, want day 1", days[0])
	}

	// August 2025 starts on a Friday: five placeholder cells first.
	c.Cursor = scheduling.MonthCursor{Year: 2025, Month: time.August}
	days = c.Days()
	if len(days) != 36 {
		t.Fatalf("August grid has %d cells, want 5 pad + 31", len(days))
	}
	for i := 0; i < 5; i++ {
		if days[i].Day != 0 {
			t.Errorf("cell %d = %+v, want placeholder", i, days[i])
		}
	}
	if days[5].Day != 1 {
		t.Errorf("cell 5 = %+v, want day 1", days[5])
	}
}

func TestCalendarSelectGating(t *testing.T) {
	c := testCalendar()
	c.Available = scheduling.NewDateSet("2025-06-20", "2025-06-10")
	c.Booked = scheduling.NewDateSet("2025-06-18")

	c.Select(20)
	if c.Selected != "2025-06-20" {
		t.Errorf("Selected = %q, want 2025-06-20", c.Selected)
	}

	// Past, booked and schedule-less days must all be ignored, keeping the
	// previous selection.
	for _, day := range []int{10, 18, 25} {
		c.Select(day)
		if c.Selected != "2025-06-20" {
			t.Errorf("Select(%d) changed selection to %q", day, c.Selected)
		}
	}
}

func TestCalendarApplyClearsDeadSelection(t *testing.T) {
	c := testCalendar()
	c.Available = scheduling.NewDateSet("2025-06-20")
	c.Select(20)

	api := &blockingAvailabilityAPI{
		responses: map[string][]models.DaySchedule{
			"2025-06-01": {day("2025-06-20", takenSlot("09:00"))},
		},
	}
	r := NewResolver(api)
	if err := r.Resolve(context.Background(), "doc-1", "2025-06-01", "2025-06-30"); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	// The selected day filled up in the fresh resolution.
	c.Apply(r)
	if c.Selected != "" {
		t.Errorf("selection on a now-booked day must clear, got %q", c.Selected)
	}
}

func TestCalendarMonthTurnResolves(t *testing.T) {
	api := &blockingAvailabilityAPI{
		responses: map[string][]models.DaySchedule{
			"2025-07-01": {day("2025-07-10", openSlot("09:00"))},
			"2025-06-01": {day("2025-06-20", openSlot("09:00"))},
		},
	}
	r := NewResolver(api)
	c := testCalendar()
	c.Available = scheduling.NewDateSet("2025-06-20")
	c.Select(20)

	if err := c.NextMonth(context.Background(), r, "doc-1"); err != nil {
		t.Fatalf("NextMonth error: %v", err)
	}
	if c.Cursor.Month != time.July {
		t.Errorf("cursor = %+v, want July", c.Cursor)
	}
	if c.Selected != "" {
		t.Errorf("month turn must clear the selection, got %q", c.Selected)
	}
	if !c.Available.Has("2025-07-10") {
		t.Error("July availability not applied")
	}

	if err := c.PrevMonth(context.Background(), r, "doc-1"); err != nil {
		t.Fatalf("PrevMonth error: %v", err)
	}
	if c.Cursor.Month != time.June {
		t.Errorf("cursor = %+v, want June", c.Cursor)
	}
	if !c.Available.Has("2025-06-20") || c.Available.Has("2025-07-10") {
		t.Errorf("June availability not re-applied: %v", c.Available)
	}
}
