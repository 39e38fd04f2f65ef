package portal

import (
	"context"
	"errors"
	"testing"
	"time"

	"carewell/models"
)

// blockingAvailabilityAPI lets a test hold a fetch open while newer fetches
// complete, to exercise the stale-response guard.
type blockingAvailabilityAPI struct {
	responses map[string][]models.DaySchedule
	errs      map[string]error
	block     map[string]chan struct{}
}

func (b *blockingAvailabilityAPI) AvailableSlotsRange(ctx context.Context, doctorID, startDate, endDate string) ([]models.DaySchedule, error) {
	if ch, ok := b.block[startDate]; ok {
		<-ch
	}
	if err, ok := b.errs[startDate]; ok {
		return nil, err
	}
	return b.responses[startDate], nil
}

func day(date string, slots ...models.TimeSlot) models.DaySchedule {
	return models.DaySchedule{Date: date, Slots: slots}
}

func openSlot(t string) models.TimeSlot  { return models.TimeSlot{Time: t, Available: true} }
func takenSlot(t string) models.TimeSlot { return models.TimeSlot{Time: t, Available: false} }

func TestResolverAppliesResponse(t *testing.T) {
	api := &blockingAvailabilityAPI{
		responses: map[string][]models.DaySchedule{
			"2025-06-01": {
				day("2025-06-10", openSlot("09:00"), takenSlot("09:30")),
				day("2025-06-11", takenSlot("09:00")),
				day("2025-06-12"),
			},
		},
	}
	r := NewResolver(api)

	if err := r.Resolve(context.Background(), "doc-1", "2025-06-01", "2025-06-30"); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !r.Ready() {
		t.Fatal("resolver not ready after successful resolve")
	}
	if !r.AvailableDates().Has("2025-06-10") {
		t.Error("2025-06-10 should be available")
	}
	if !r.BookedDates().Has("2025-06-11") {
		t.Error("2025-06-11 should be booked")
	}
	if r.AvailableDates().Has("2025-06-12") || r.BookedDates().Has("2025-06-12") {
		t.Error("a slotless day is neither available nor booked")
	}

	slots := r.SlotsFor("2025-06-10")
	if len(slots) != 1 || slots[0].Time != "09:00" {
		t.Errorf("SlotsFor = %+v, want the single open slot", slots)
	}
}

func TestResolverDiscardsStaleResponse(t *testing.T) {
	gate := make(chan struct{})
	api := &blockingAvailabilityAPI{
		responses: map[string][]models.DaySchedule{
			"2025-06-01": {day("2025-06-10", openSlot("09:00"))},
			"2025-07-01": {day("2025-07-05", openSlot("10:00"))},
		},
		block: map[string]chan struct{}{"2025-06-01": gate},
	}
	r := NewResolver(api)

	staleDone := make(chan error, 1)
	go func() {
		staleDone <- r.Resolve(context.Background(), "doc-1", "2025-06-01", "2025-06-30")
	}()

	// Give the stale fetch time to take its token before the newer one runs.
	time.Sleep(10 * time.Millisecond)

	if err := r.Resolve(context.Background(), "doc-1", "2025-07-01", "2025-07-31"); err != nil {
		t.Fatalf("newer Resolve error: %v", err)
	}

	// Release the stale fetch; its response must be dropped.
	close(gate)
	if err := <-staleDone; err != nil {
		t.Fatalf("stale Resolve returned error: %v", err)
	}

	if r.AvailableDates().Has("2025-06-10") {
		t.Error("stale June data overwrote the newer July resolution")
	}
	if !r.AvailableDates().Has("2025-07-05") {
		t.Error("newer July data missing")
	}
}

func TestResolverErrorState(t *testing.T) {
	api := &blockingAvailabilityAPI{
		responses: map[string][]models.DaySchedule{
			"2025-06-01": {day("2025-06-10", openSlot("09:00"))},
		},
		errs: map[string]error{"2025-07-01": errors.New("backend down")},
	}
	r := NewResolver(api)

	if err := r.Resolve(context.Background(), "doc-1", "2025-06-01", "2025-06-30"); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if err := r.Resolve(context.Background(), "doc-1", "2025-07-01", "2025-07-31"); err == nil {
		t.Fatal("expected fetch failure to surface")
	}

	// Failure is a distinct state, not an empty calendar.
	if r.Ready() {
		t.Error("resolver must not report ready after a failed fetch")
	}
	if r.Err() == nil {
		t.Error("error state not recorded")
	}
}

func TestResolverIgnoresCancellation(t *testing.T) {
	api := &blockingAvailabilityAPI{
		responses: map[string][]models.DaySchedule{
			"2025-06-01": {day("2025-06-10", openSlot("09:00"))},
		},
		errs: map[string]error{"2025-07-01": context.Canceled},
	}
	r := NewResolver(api)

	if err := r.Resolve(context.Background(), "doc-1", "2025-06-01", "2025-06-30"); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if err := r.Resolve(context.Background(), "doc-1", "2025-07-01", "2025-07-31"); err != nil {
		t.Fatalf("cancellation should be silent, got %v", err)
	}

	// Teardown keeps the last good state.
	if !r.Ready() || r.Err() != nil {
		t.Errorf("cancelled fetch must not disturb state: ready=%v err=%v", r.Ready(), r.Err())
	}
	if !r.AvailableDates().Has("2025-06-10") {
		t.Error("previous resolution lost after cancellation")
	}
}

func TestResolverDedupesDates(t *testing.T) {
	api := &blockingAvailabilityAPI{
		responses: map[string][]models.DaySchedule{
			"2025-06-01": {
				day("2025-06-10", openSlot("09:00")),
				day("2025-06-10", openSlot("10:00")),
				day("2025-06-11", openSlot("09:00")),
			},
		},
	}
	r := NewResolver(api)

	if err := r.Resolve(context.Background(), "doc-1", "2025-06-01", "2025-06-30"); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	// Only the first entry for a duplicated date survives.
	slots := r.SlotsFor("2025-06-10")
	if len(slots) != 1 || slots[0].Time != "09:00" {
		t.Errorf("SlotsFor = %+v, want the first duplicate's slots", slots)
	}

	// The dedupe works on its own copy; the fetched slice is left alone.
	fetched := api.responses["2025-06-01"]
	if len(fetched) != 3 || fetched[1].Date != "2025-06-10" || fetched[2].Date != "2025-06-11" {
		t.Errorf("resolver mutated the API's slice: %+v", fetched)
	}
}
