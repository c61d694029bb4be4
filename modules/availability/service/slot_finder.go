package service

import (
	"time"

	"team-scheduler-api/core/constants"
	"team-scheduler-api/modules/availability/entity"
)

// SlotFinder enumerates candidate meeting slots and keeps those free for
// every participant. The scan is a single deterministic pass: ascending days
// from the window anchor, then ascending half-hour start times inside
// business hours. Output order is part of the contract — callers may rely on
// slots being chronologically sorted.
type SlotFinder struct {
	// GranularityMinutes is the candidate start-time step.
	GranularityMinutes int
}

// NewSlotFinder creates a slot finder with the fixed half-hour granularity.
func NewSlotFinder() *SlotFinder {
	return &SlotFinder{
		GranularityMinutes: constants.SlotGranularityMinutes,
	}
}

// FindSlots computes the mutually free slots across all participants' busy
// intervals. A slot is accepted only when no participant has any conflicting
// interval. At most cap slots are returned; the scan stops as soon as the cap
// is reached.
//
// Weekends are skipped. Candidates starting before window.Now are skipped.
// A candidate whose end would cross the business-hours end aborts the rest of
// that day, since every later start on the same day crosses it too.
func (sf *SlotFinder) FindSlots(
	busyByParticipant map[string][]entity.BusyInterval,
	durationMinutes int,
	window entity.SearchWindow,
	cap int,
) []entity.TimeSlot {

	loc := window.Location
	if loc == nil {
		loc = time.Local
	}

	now := window.Now.In(loc)
	duration := time.Duration(durationMinutes) * time.Minute
	slots := make([]entity.TimeSlot, 0, cap)

	for d := 0; d < window.DaysToCheck; d++ {
		day := now.AddDate(0, 0, d)

		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		dayEnd := time.Date(day.Year(), day.Month(), day.Day(),
			window.BusinessHoursEnd, 0, 0, 0, loc)

	dayScan:
		for hour := window.BusinessHoursStart; hour < window.BusinessHoursEnd; hour++ {
			for minute := 0; minute < 60; minute += sf.GranularityMinutes {
				slotStart := time.Date(day.Year(), day.Month(), day.Day(),
					hour, minute, 0, 0, loc)
				slotEnd := slotStart.Add(duration)

				// No slots in the past.
				if slotStart.Before(now) {
					continue
				}

				// A slot must fit entirely inside business hours; once one
				// crosses the end, every later candidate that day does too.
				if slotEnd.After(dayEnd) {
					break dayScan
				}

				if !sf.freeForAll(slotStart, slotEnd, busyByParticipant) {
					continue
				}

				slots = append(slots, entity.TimeSlot{Start: slotStart, End: slotEnd})
				if len(slots) >= cap {
					return slots
				}
			}
		}
	}

	return slots
}

// freeForAll reports whether [slotStart, slotEnd) avoids every busy interval
// of every participant. Touching boundaries are not a conflict: a slot ending
// exactly when a busy interval starts is free.
func (sf *SlotFinder) freeForAll(slotStart, slotEnd time.Time, busyByParticipant map[string][]entity.BusyInterval) bool {
	for _, intervals := range busyByParticipant {
		for _, busy := range intervals {
			if slotStart.Before(busy.End) && slotEnd.After(busy.Start) {
				return false
			}
		}
	}
	return true
}
