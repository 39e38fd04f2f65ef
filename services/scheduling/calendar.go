package scheduling

import "time"

// DateSet holds "2006-01-02" date strings.
type DateSet map[string]struct{}

// NewDateSet builds a set from date strings.
func NewDateSet(dates ...string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Has reports whether date is in the set.
func (s DateSet) Has(date string) bool {
	_, ok := s[date]
	return ok
}

// Add inserts date into the set.
func (s DateSet) Add(date string) {
	s[date] = struct{}{}
}

// CalendarDayState is the derived classification of one grid day.
// It is computed fresh on every render and never persisted.
type CalendarDayState struct {
	Year        int
	Month       time.Month
	Day         int
	IsPast      bool
	IsAvailable bool
	IsBooked    bool
	IsSelected  bool
}

// Date returns the day's "2006-01-02" key.
func (s CalendarDayState) Date() string {
	return time.Date(s.Year, s.Month, s.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// Selectable reports whether the day may be picked. Past overrides any
// availability data; among non-past days a fully booked date is not pickable.
func (s CalendarDayState) Selectable() bool {
	return !s.IsPast && s.IsAvailable && !s.IsBooked
}

// DaysInMonth returns the number of days in the given Gregorian month and the
// weekday index (0=Sunday) of its first day, used to left-pad the grid.
func DaysInMonth(year int, month time.Month) (int, int) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Day zero of the next month is the last day of this one.
	count := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return count, int(first.Weekday())
}

// Classify derives the state of one day from the availability sets and the
// current selection. The today comparison truncates time-of-day so a same-day
// appointment is not marked past. Selected is an orthogonal highlight and does
// not change clickability.
func Classify(year int, month time.Month, day int, today time.Time, available, booked DateSet, selectedDate string) CalendarDayState {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	key := date.Format("2006-01-02")
	todayTrunc := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	return CalendarDayState{
		Year:        year,
		Month:       month,
		Day:         day,
		IsPast:      date.Before(todayTrunc),
		IsAvailable: available.Has(key),
		IsBooked:    booked.Has(key),
		IsSelected:  selectedDate == key,
	}
}

// MonthCursor is the reference month of a calendar view.
type MonthCursor struct {
	Year  int
	Month time.Month
}

// Prev shifts the cursor back one month, wrapping January to December.
func (c MonthCursor) Prev() MonthCursor {
	if c.Month == time.January {
		return MonthCursor{Year: c.Year - 1, Month: time.December}
	}
	return MonthCursor{Year: c.Year, Month: c.Month - 1}
}

// Next shifts the cursor forward one month, wrapping December to January.
func (c MonthCursor) Next() MonthCursor {
	if c.Month == time.December {
		return MonthCursor{Year: c.Year + 1, Month: time.January}
	}
	return MonthCursor{Year: c.Year, Month: c.Month + 1}
}
