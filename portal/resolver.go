package portal

import (
	"context"
	"errors"
	"sync"

	"carewell/models"
	"carewell/services/scheduling"
)

// AvailabilityAPI is the slice of the backend the resolver needs.
type AvailabilityAPI interface {
	AvailableSlotsRange(ctx context.Context, doctorID, startDate, endDate string) ([]models.DaySchedule, error)
}

// Resolver holds the latest resolved schedule for whatever doctor/range the
// user is looking at. Rapid month navigation issues overlapping fetches; each
// fetch takes a token and only the response matching the newest token is
// applied, so a slow stale response can never overwrite a newer selection.
type Resolver struct {
	api AvailabilityAPI

	mu        sync.Mutex
	latest    uint64
	schedule  []models.DaySchedule
	available scheduling.DateSet
	booked    scheduling.DateSet
	err       error
	ready     bool
}

// NewResolver builds a resolver over the given availability API.
func NewResolver(api AvailabilityAPI) *Resolver {
	return &Resolver{
		api:       api,
		available: scheduling.NewDateSet(),
		booked:    scheduling.NewDateSet(),
	}
}

// Resolve fetches the doctor's schedule for the inclusive range and, if this
// call is still the newest one, applies it. Superseded responses and
// teardown cancellations are discarded silently; a real fetch failure becomes
// the resolver's error state, which is distinct from "no availability".
func (r *Resolver) Resolve(ctx context.Context, doctorID, startDate, endDate string) error {
	r.mu.Lock()
	r.latest++
	token := r.latest
	r.mu.Unlock()

	schedule, err := r.api.AvailableSlotsRange(ctx, doctorID, startDate, endDate)

	r.mu.Lock()
	defer r.mu.Unlock()

	if token != r.latest {
		// A newer request owns the state now.
		return nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		r.err = err
		r.ready = false
		return err
	}

	// Defensive dedupe: the contract says dates are unique, keep it true here
	// too. A fresh slice, the fetched one stays the API's.
	seen := scheduling.NewDateSet()
	unique := make([]models.DaySchedule, 0, len(schedule))
	for _, day := range schedule {
		if seen.Has(day.Date) {
			continue
		}
		seen.Add(day.Date)
		unique = append(unique, day)
	}

	r.schedule = unique
	r.available = scheduling.AvailableDates(unique)
	r.booked = scheduling.BookedDates(unique)
	r.err = nil
	r.ready = true
	return nil
}

// Ready reports whether a resolution has been applied and no error is pending.
func (r *Resolver) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// Err returns the current error state, if the last applied fetch failed.
func (r *Resolver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// AvailableDates returns the dates with at least one open slot.
func (r *Resolver) AvailableDates() scheduling.DateSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.available
}

// BookedDates returns the dates that have slots but none open.
func (r *Resolver) BookedDates() scheduling.DateSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booked
}

// SlotsFor returns the open slots of one resolved date.
func (r *Resolver) SlotsFor(date string) []models.TimeSlot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return scheduling.SlotsFor(r.schedule, date)
}
