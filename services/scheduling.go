package services

import (
	"fmt"
	"time"
)

// TimeSlot is one of the fixed 2-hour visit windows
type TimeSlot struct {
	Label     string // e.g. "09:00-11:00"
	StartHour int
	EndHour   int
}

// TimeSlots is the fixed ordered list of bookable visit windows,
// seven 2-hour slots spanning 07:00-21:00
var TimeSlots = []TimeSlot{
	{Label: "07:00-09:00", StartHour: 7, EndHour: 9},
	{Label: "09:00-11:00", StartHour: 9, EndHour: 11},
	{Label: "11:00-13:00", StartHour: 11, EndHour: 13},
	{Label: "13:00-15:00", StartHour: 13, EndHour: 15},
	{Label: "15:00-17:00", StartHour: 15, EndHour: 17},
	{Label: "17:00-19:00", StartHour: 17, EndHour: 19},
	{Label: "19:00-21:00", StartHour: 19, EndHour: 21},
}

// slotBuffer is how long before a window closes that bookings stop being
// accepted for it. A same-day slot is valid only while now+slotBuffer is
// still before the window's end.
const slotBuffer = 30 * time.Minute

// FindTimeSlot returns the slot with the given label
func FindTimeSlot(label string) (TimeSlot, bool) {
	for _, s := range TimeSlots {
		if s.Label == label {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// dateOnly truncates t to its calendar date in t's location
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidateSchedule checks a visit date and time slot against the current time.
// Past dates are rejected outright. For today, a slot is valid only while
// now+30min is before the slot's end; future dates accept all seven slots.
func ValidateSchedule(date time.Time, slotLabel string, now time.Time) *WorkflowError {
	slot, ok := FindTimeSlot(slotLabel)
	if !ok {
		return NewValidationError(CodeInvalidTimeSlot,
			fmt.Sprintf("Unknown time slot %q", slotLabel))
	}

	visitDay := dateOnly(date)
	today := dateOnly(now)

	if visitDay.Before(today) {
		return NewValidationError(CodeValidation, "Scheduled date cannot be in the past")
	}

	if visitDay.Equal(today) {
		slotEnd := visitDay.Add(time.Duration(slot.EndHour) * time.Hour)
		if !now.Add(slotBuffer).Before(slotEnd) {
			return NewValidationError(CodeInvalidTimeSlot,
				fmt.Sprintf("Time slot %s is no longer available today", slot.Label))
		}
	}

	return nil
}

// ValidSlotsFor returns the slot labels still bookable on the given date
func ValidSlotsFor(date time.Time, now time.Time) []string {
	labels := make([]string, 0, len(TimeSlots))
	for _, s := range TimeSlots {
		if ValidateSchedule(date, s.Label, now) == nil {
			labels = append(labels, s.Label)
		}
	}
	return labels
}

// SlotStillValid reports whether a previously chosen slot remains bookable
// after the visit date changed. When it does not, the caller must clear the
// slot and ask for re-selection.
func SlotStillValid(slotLabel string, newDate time.Time, now time.Time) bool {
	return ValidateSchedule(newDate, slotLabel, now) == nil
}
