package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	scheduleRepo "carewell/database/repository/schedule"
	"carewell/models"
	"carewell/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// maxRangeDays caps a single resolution; two month views fit comfortably.
const maxRangeDays = 62

type AvailabilityService interface {
	ResolveRange(ctx context.Context, doctorID, startDate, endDate string) ([]models.DaySchedule, error)
	InvalidateDoctor(ctx context.Context, doctorID string)
}

// DefaultAvailabilityService resolves a doctor's open-slot schedule for a date
// range. Resolved ranges are cached briefly in Redis; any slot mutation for
// the doctor invalidates the cached ranges.
type DefaultAvailabilityService struct {
	Schedule scheduleRepo.ScheduleRepository
	Cache    *redis.Client
	CacheTTL time.Duration
}

// ResolveRange returns one DaySchedule per day of the inclusive range, in
// order, with unique dates. Days without a stored schedule come back with an
// empty slot list; they are unavailable, not an error.
func (s *DefaultAvailabilityService) ResolveRange(ctx context.Context, doctorID, startDate, endDate string) ([]models.DaySchedule, error) {
	logger := utils.GetLogger()

	if doctorID == "" {
		return nil, NewRangeError("doctor id is required")
	}
	start, err := time.Parse(utils.DateLayout, startDate)
	if err != nil {
		return nil, NewRangeError("invalid start date %q", startDate)
	}
	end, err := time.Parse(utils.DateLayout, endDate)
	if err != nil {
		return nil, NewRangeError("invalid end date %q", endDate)
	}
	if end.Before(start) {
		return nil, NewRangeError("end date %s precedes start date %s", endDate, startDate)
	}
	if int(end.Sub(start).Hours()/24) >= maxRangeDays {
		return nil, NewRangeError("range exceeds %d days", maxRangeDays)
	}

	cacheKey := fmt.Sprintf("%s%s:%s:%s", utils.AvailabilityCachePrefix, doctorID, startDate, endDate)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var schedule []models.DaySchedule
			if err := json.Unmarshal([]byte(cached), &schedule); err == nil {
				return schedule, nil
			}
		} else if err != redis.Nil {
			logger.Warn("availability cache read failed", zap.String("doctorID", doctorID), zap.Error(err))
		}
	}

	stored, err := s.Schedule.GetRange(ctx, doctorID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve range for doctor %s: %w", doctorID, err)
	}

	// Index by date; duplicates cannot survive this, whatever the store holds.
	byDate := make(map[string]models.DoctorDaySchedule, len(stored))
	for _, day := range stored {
		byDate[day.Date] = day
	}

	var schedule []models.DaySchedule
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(utils.DateLayout)
		if day, ok := byDate[date]; ok {
			schedule = append(schedule, day.ToDaySchedule())
			continue
		}
		schedule = append(schedule, models.DaySchedule{Date: date, Slots: []models.TimeSlot{}})
	}

	if s.Cache != nil {
		if data, err := json.Marshal(schedule); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, data, s.cacheTTL()).Err(); err != nil {
				logger.Warn("availability cache write failed", zap.String("doctorID", doctorID), zap.Error(err))
			}
		}
	}

	return schedule, nil
}

// InvalidateDoctor drops every cached range for the doctor. Best effort; a
// failed invalidation only means a stale read until the TTL expires.
func (s *DefaultAvailabilityService) InvalidateDoctor(ctx context.Context, doctorID string) {
	if s.Cache == nil {
		return
	}
	logger := utils.GetLogger()

	pattern := utils.AvailabilityCachePrefix + doctorID + ":*"
	iter := s.Cache.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.Cache.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("failed to drop cached range", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("availability cache scan failed", zap.String("doctorID", doctorID), zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) cacheTTL() time.Duration {
	if s.CacheTTL > 0 {
		return s.CacheTTL
	}
	return time.Minute
}

// AvailableDates derives the set of dates having at least one open slot.
func AvailableDates(schedule []models.DaySchedule) DateSet {
	set := make(DateSet)
	for _, day := range schedule {
		for _, slot := range day.Slots {
			if slot.Available {
				set.Add(day.Date)
				break
			}
		}
	}
	return set
}

// BookedDates derives the set of dates that have slots but none open.
func BookedDates(schedule []models.DaySchedule) DateSet {
	set := make(DateSet)
	for _, day := range schedule {
		if len(day.Slots) == 0 {
			continue
		}
		open := false
		for _, slot := range day.Slots {
			if slot.Available {
				open = true
				break
			}
		}
		if !open {
			set.Add(day.Date)
		}
	}
	return set
}

// SlotsFor returns the open slots of one date within a resolved schedule.
// Unknown dates yield an empty list.
func SlotsFor(schedule []models.DaySchedule, date string) []models.TimeSlot {
	for _, day := range schedule {
		if day.Date != date {
			continue
		}
		var open []models.TimeSlot
		for _, slot := range day.Slots {
			if slot.Available {
				open = append(open, slot)
			}
		}
		return open
	}
	return nil
}
