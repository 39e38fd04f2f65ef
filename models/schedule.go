package models

// TimeSlot is one bookable time unit within a doctor's day, as served to clients.
type TimeSlot struct {
	Time      string `bson:"time" json:"time"` // "15:04", 24h
	Available bool   `bson:"available" json:"available"`
}

// DaySchedule groups the slots of one calendar day for one doctor.
// Produced fresh on every resolution; days the doctor does not practice
// come back with an empty Slots sequence.
type DaySchedule struct {
	Date  string     `bson:"date" json:"date"` // "2006-01-02"
	Slots []TimeSlot `bson:"slots" json:"slots"`
}

// ScheduleSlot is the stored form of a slot. Booked is flipped by the
// reservation path, never by schedule setup.
type ScheduleSlot struct {
	Time   string `bson:"time" json:"time"`
	Booked bool   `bson:"booked" json:"booked"`
}

// DoctorDaySchedule is one schedule document: a doctor's slots for one date.
type DoctorDaySchedule struct {
	DoctorID string         `bson:"doctorId" json:"doctorId"`
	Date     string         `bson:"date" json:"date"`
	Slots    []ScheduleSlot `bson:"slots" json:"slots"`
}

// ToDaySchedule converts the stored document into the wire shape.
func (d DoctorDaySchedule) ToDaySchedule() DaySchedule {
	out := DaySchedule{Date: d.Date, Slots: make([]TimeSlot, 0, len(d.Slots))}
	for _, s := range d.Slots {
		out.Slots = append(out.Slots, TimeSlot{Time: s.Time, Available: !s.Booked})
	}
	return out
}

// SetScheduleRequest defines the payload for setting up a doctor's day schedules.
type SetScheduleRequest struct {
	Days []DoctorDaySchedule `json:"days" binding:"required"`
}
