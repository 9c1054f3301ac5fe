package services

import (
	"time"

	"github.com/IsaacSuo/Web-health/internal/models"
)

// ResolveTimeSlot returns the first slot whose interval contains now.
// A slot with start > end wraps past midnight.
func ResolveTimeSlot(now models.TimeOfDay, slots []models.TimeSlot) (models.TimeSlot, bool) {
	for _, slot := range slots {
		if slot.Contains(now) {
			return slot, true
		}
	}
	return models.TimeSlot{}, false
}

// ResolveTimeSlotAt resolves the wall-clock time of value in location.
func ResolveTimeSlotAt(value time.Time, location *time.Location, slots []models.TimeSlot) (models.TimeSlot, bool) {
	if location == nil {
		location = time.UTC
	}
	return ResolveTimeSlot(models.TimeOfDayOf(value.In(location)), slots)
}
