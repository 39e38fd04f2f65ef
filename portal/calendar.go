package portal

import (
	"context"
	"time"

	"carewell/services/scheduling"
)

// Calendar is the month-grid view state: a cursor month, the availability
// sets last applied from a resolver, and the user's selection. Day states are
// derived on every Days() call and never stored.
type Calendar struct {
	Cursor    scheduling.MonthCursor
	Today     time.Time
	Available scheduling.DateSet
	Booked    scheduling.DateSet
	Selected  string
}

// NewCalendar opens the calendar on the month containing today.
func NewCalendar(today time.Time) *Calendar {
	return &Calendar{
		Cursor:    scheduling.MonthCursor{Year: today.Year(), Month: today.Month()},
		Today:     today,
		Available: scheduling.NewDateSet(),
		Booked:    scheduling.NewDateSet(),
	}
}

// MonthRange returns the inclusive first/last dates of the cursor month, in
// the form the availability endpoint takes.
func (c *Calendar) MonthRange() (string, string) {
	count, _ := scheduling.DaysInMonth(c.Cursor.Year, c.Cursor.Month)
	first := time.Date(c.Cursor.Year, c.Cursor.Month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(c.Cursor.Year, c.Cursor.Month, count, 0, 0, 0, 0, time.UTC)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// Apply copies the resolver's current sets into the view. A selection that no
// longer refers to a selectable day is cleared rather than left dangling.
func (c *Calendar) Apply(r *Resolver) {
	c.Available = r.AvailableDates()
	c.Booked = r.BookedDates()
	if c.Selected != "" && (!c.Available.Has(c.Selected) || c.Booked.Has(c.Selected)) {
		c.Selected = ""
	}
}

// Days returns the cursor month as a grid of day states, left-padded with
// zero-Day placeholder cells so the 1st lands on its weekday column.
func (c *Calendar) Days() []scheduling.CalendarDayState {
	count, offset := scheduling.DaysInMonth(c.Cursor.Year, c.Cursor.Month)
	grid := make([]scheduling.CalendarDayState, 0, offset+count)
	for i := 0; i < offset; i++ {
		grid = append(grid, scheduling.CalendarDayState{})
	}
	for day := 1; day <= count; day++ {
		grid = append(grid, scheduling.Classify(
			c.Cursor.Year, c.Cursor.Month, day,
			c.Today, c.Available, c.Booked, c.Selected,
		))
	}
	return grid
}

// Select picks a day of the cursor month. Past, fully booked and no-schedule
// days are silently ignored, so the selection always names a bookable date.
func (c *Calendar) Select(day int) {
	state := scheduling.Classify(
		c.Cursor.Year, c.Cursor.Month, day,
		c.Today, c.Available, c.Booked, c.Selected,
	)
	if !state.Selectable() {
		return
	}
	c.Selected = state.Date()
}

// NextMonth moves the cursor forward and re-resolves availability. The
// selection is cleared because it referred to the old month's data.
func (c *Calendar) NextMonth(ctx context.Context, r *Resolver, doctorID string) error {
	c.Cursor = c.Cursor.Next()
	return c.turn(ctx, r, doctorID)
}

// PrevMonth moves the cursor back and re-resolves availability.
func (c *Calendar) PrevMonth(ctx context.Context, r *Resolver, doctorID string) error {
	c.Cursor = c.Cursor.Prev()
	return c.turn(ctx, r, doctorID)
}

func (c *Calendar) turn(ctx context.Context, r *Resolver, doctorID string) error {
	c.Selected = ""
	start, end := c.MonthRange()
	if err := r.Resolve(ctx, doctorID, start, end); err != nil {
		return err
	}
	c.Apply(r)
	return nil
}
