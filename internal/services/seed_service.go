package services

import (
	"fmt"
	"sort"

	"github.com/IsaacSuo/Web-health/internal/catalog"
	"github.com/IsaacSuo/Web-health/internal/models"
)

type SeedTimeSlotRepository interface {
	FindByName(name models.SlotName) (models.TimeSlot, bool, error)
	ListByNames(names []models.SlotName) ([]models.TimeSlot, error)
	Create(slot *models.TimeSlot) error
	UpdateFields(slotID uint, updates map[string]any) error
}

type SeedAcupointRepository interface {
	FindByName(name string) (models.AcupointMassage, bool, error)
	Create(acupoint *models.AcupointMassage) error
	UpdateFields(acupointID uint, updates map[string]any) error
	ReplaceTimeSlots(acupoint *models.AcupointMassage, slots []models.TimeSlot) error
}

// SeedReport counts what one reconciliation pass did per record kind.
type SeedReport struct {
	TimeSlotsCreated   int
	TimeSlotsUpdated   int
	TimeSlotsUnchanged int
	AcupointsCreated   int
	AcupointsUpdated   int
	AcupointsUnchanged int
}

func (report SeedReport) Changed() int {
	return report.TimeSlotsCreated + report.TimeSlotsUpdated + report.AcupointsCreated + report.AcupointsUpdated
}

type SeedService struct {
	slots     SeedTimeSlotRepository
	acupoints SeedAcupointRepository
}

func NewSeedService(slots SeedTimeSlotRepository, acupoints SeedAcupointRepository) *SeedService {
	return &SeedService{slots: slots, acupoints: acupoints}
}

// Apply reconciles the store with content: missing records are created and
// existing ones are updated only for the fields that differ. Nothing is deleted.
// A record inserted concurrently by another seeder is reconciled as an update.
func (service *SeedService) Apply(content catalog.Catalog) (SeedReport, error) {
	report := SeedReport{}
	if err := content.Validate(); err != nil {
		return report, fmt.Errorf("validate catalog: %w", err)
	}

	for _, entry := range content.TimeSlots {
		desired, err := entry.Model()
		if err != nil {
			return report, err
		}
		outcome, err := service.reconcileTimeSlot(desired)
		if err != nil {
			return report, err
		}
		switch outcome {
		case seedCreated:
			report.TimeSlotsCreated++
		case seedUpdated:
			report.TimeSlotsUpdated++
		default:
			report.TimeSlotsUnchanged++
		}
	}

	for _, entry := range content.Acupoints {
		desired, err := entry.Model()
		if err != nil {
			return report, err
		}
		outcome, err := service.reconcileAcupoint(desired, entry.SlotNames())
		if err != nil {
			return report, err
		}
		switch outcome {
		case seedCreated:
			report.AcupointsCreated++
		case seedUpdated:
			report.AcupointsUpdated++
		default:
			report.AcupointsUnchanged++
		}
	}
	return report, nil
}

type seedOutcome int

const (
	seedUnchanged seedOutcome = iota
	seedCreated
	seedUpdated
)

func (service *SeedService) reconcileTimeSlot(desired models.TimeSlot) (seedOutcome, error) {
	existing, found, err := service.slots.FindByName(desired.Name)
	if err != nil {
		return seedUnchanged, fmt.Errorf("load time slot %s: %w", desired.Name, err)
	}
	if !found {
		err = service.slots.Create(&desired)
		if err == nil {
			return seedCreated, nil
		}
		if !isDuplicateKey(err) {
			return seedUnchanged, fmt.Errorf("create time slot %s: %w", desired.Name, err)
		}
		existing, found, err = service.slots.FindByName(desired.Name)
		if err != nil {
			return seedUnchanged, fmt.Errorf("reload time slot %s: %w", desired.Name, err)
		}
		if !found {
			return seedUnchanged, fmt.Errorf("%w: time slot %s vanished after duplicate insert", ErrConstraintViolation, desired.Name)
		}
	}

	updates := timeSlotUpdates(existing, desired)
	if len(updates) == 0 {
		return seedUnchanged, nil
	}
	if err := service.slots.UpdateFields(existing.ID, updates); err != nil {
		return seedUnchanged, fmt.Errorf("update time slot %s: %w", desired.Name, err)
	}
	return seedUpdated, nil
}

func timeSlotUpdates(existing models.TimeSlot, desired models.TimeSlot) map[string]any {
	updates := map[string]any{}
	if existing.ChineseName != desired.ChineseName {
		updates["chinese_name"] = desired.ChineseName
	}
	if existing.Meridian != desired.Meridian {
		updates["meridian"] = desired.Meridian
	}
	if existing.Organ != desired.Organ {
		updates["organ"] = desired.Organ
	}
	if existing.StartTime != desired.StartTime {
		updates["start_time"] = desired.StartTime
	}
	if existing.EndTime != desired.EndTime {
		updates["end_time"] = desired.EndTime
	}
	if existing.Description != desired.Description {
		updates["description"] = desired.Description
	}
	if existing.HealthTips != desired.HealthTips {
		updates["health_tips"] = desired.HealthTips
	}
	if existing.CaseSuggestions != desired.CaseSuggestions {
		updates["case_suggestions"] = desired.CaseSuggestions
	}
	if existing.FoodRecommendations != desired.FoodRecommendations {
		updates["food_recommendations"] = desired.FoodRecommendations
	}
	return updates
}

func (service *SeedService) reconcileAcupoint(desired models.AcupointMassage, slotNames []models.SlotName) (seedOutcome, error) {
	slots, err := service.slots.ListByNames(slotNames)
	if err != nil {
		return seedUnchanged, fmt.Errorf("load time slots for acupoint %s: %w", desired.Name, err)
	}
	if len(slots) != len(uniqueSlotNames(slotNames)) {
		return seedUnchanged, fmt.Errorf("acupoint %s references time slots missing from the store", desired.Name)
	}

	existing, found, err := service.acupoints.FindByName(desired.Name)
	if err != nil {
		return seedUnchanged, fmt.Errorf("load acupoint %s: %w", desired.Name, err)
	}
	if !found {
		err = service.acupoints.Create(&desired)
		if err == nil {
			if len(slots) > 0 {
				if err := service.acupoints.ReplaceTimeSlots(&desired, slots); err != nil {
					return seedUnchanged, fmt.Errorf("link acupoint %s: %w", desired.Name, err)
				}
			}
			return seedCreated, nil
		}
		if !isDuplicateKey(err) {
			return seedUnchanged, fmt.Errorf("create acupoint %s: %w", desired.Name, err)
		}
		existing, found, err = service.acupoints.FindByName(desired.Name)
		if err != nil {
			return seedUnchanged, fmt.Errorf("reload acupoint %s: %w", desired.Name, err)
		}
		if !found {
			return seedUnchanged, fmt.Errorf("%w: acupoint %s vanished after duplicate insert", ErrConstraintViolation, desired.Name)
		}
	}

	outcome := seedUnchanged
	if updates := acupointUpdates(existing, desired); len(updates) > 0 {
		if err := service.acupoints.UpdateFields(existing.ID, updates); err != nil {
			return seedUnchanged, fmt.Errorf("update acupoint %s: %w", desired.Name, err)
		}
		outcome = seedUpdated
	}
	if !sameSlotSet(existing.TimeSlots, slots) {
		if err := service.acupoints.ReplaceTimeSlots(&existing, slots); err != nil {
			return seedUnchanged, fmt.Errorf("link acupoint %s: %w", desired.Name, err)
		}
		outcome = seedUpdated
	}
	return outcome, nil
}

func acupointUpdates(existing models.AcupointMassage, desired models.AcupointMassage) map[string]any {
	updates := map[string]any{}
	if existing.BodyPart != desired.BodyPart {
		updates["body_part"] = desired.BodyPart
	}
	if existing.LocationDescription != desired.LocationDescription {
		updates["location_description"] = desired.LocationDescription
	}
	if existing.MassageMethod != desired.MassageMethod {
		updates["massage_method"] = desired.MassageMethod
	}
	if existing.Benefits != desired.Benefits {
		updates["benefits"] = desired.Benefits
	}
	if existing.Image != desired.Image {
		updates["image"] = desired.Image
	}
	return updates
}

func sameSlotSet(current []models.TimeSlot, desired []models.TimeSlot) bool {
	left := slotNamesOf(current)
	right := slotNamesOf(desired)
	if len(left) != len(right) {
		return false
	}
	for index := range left {
		if left[index] != right[index] {
			return false
		}
	}
	return true
}

func slotNamesOf(slots []models.TimeSlot) []string {
	names := make([]string, 0, len(slots))
	for _, slot := range slots {
		names = append(names, string(slot.Name))
	}
	sort.Strings(names)
	return names
}

func uniqueSlotNames(names []models.SlotName) map[models.SlotName]struct{} {
	unique := make(map[models.SlotName]struct{}, len(names))
	for _, name := range names {
		unique[name] = struct{}{}
	}
	return unique
}
