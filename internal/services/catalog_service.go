package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/IsaacSuo/Web-health/internal/models"
)

type CatalogTimeSlotRepository interface {
	ListOrdered() ([]models.TimeSlot, error)
	FindByID(slotID uint) (models.TimeSlot, bool, error)
	FindByName(name models.SlotName) (models.TimeSlot, bool, error)
}

type CatalogAcupointRepository interface {
	List(part *models.BodyPart) ([]models.AcupointMassage, error)
	FindByID(acupointID uint) (models.AcupointMassage, bool, error)
	ListByTimeSlot(slotID uint) ([]models.AcupointMassage, error)
}

type TimeSlotDetail struct {
	Slot      models.TimeSlot
	Acupoints []models.AcupointMassage
}

type HomeOverview struct {
	Now     time.Time
	Slots   []models.TimeSlot
	Current *models.TimeSlot
}

// CatalogService answers read-only questions about the time slots and acupoints.
type CatalogService struct {
	slots     CatalogTimeSlotRepository
	acupoints CatalogAcupointRepository
	location  *time.Location
}

func NewCatalogService(slots CatalogTimeSlotRepository, acupoints CatalogAcupointRepository, location *time.Location) *CatalogService {
	if location == nil {
		location = time.UTC
	}
	return &CatalogService{
		slots:     slots,
		acupoints: acupoints,
		location:  location,
	}
}

func (service *CatalogService) ListTimeSlots() ([]models.TimeSlot, error) {
	slots, err := service.slots.ListOrdered()
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}

func (service *CatalogService) TimeSlotByName(raw string) (models.TimeSlot, error) {
	name := models.SlotName(strings.ToLower(strings.TrimSpace(raw)))
	if !name.Valid() {
		return models.TimeSlot{}, ErrNotFound
	}
	slot, found, err := service.slots.FindByName(name)
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("load time slot %s: %w", name, err)
	}
	if !found {
		return models.TimeSlot{}, ErrNotFound
	}
	return slot, nil
}

func (service *CatalogService) TimeSlotByID(slotID uint) (models.TimeSlot, error) {
	slot, found, err := service.slots.FindByID(slotID)
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("load time slot %d: %w", slotID, err)
	}
	if !found {
		return models.TimeSlot{}, ErrNotFound
	}
	return slot, nil
}

func (service *CatalogService) AcupointsForTimeSlot(slotID uint) ([]models.AcupointMassage, error) {
	acupoints, err := service.acupoints.ListByTimeSlot(slotID)
	if err != nil {
		return nil, fmt.Errorf("list acupoints for time slot %d: %w", slotID, err)
	}
	return acupoints, nil
}

func (service *CatalogService) TimeSlotDetail(raw string) (TimeSlotDetail, error) {
	slot, err := service.TimeSlotByName(raw)
	if err != nil {
		return TimeSlotDetail{}, err
	}
	acupoints, err := service.AcupointsForTimeSlot(slot.ID)
	if err != nil {
		return TimeSlotDetail{}, err
	}
	return TimeSlotDetail{Slot: slot, Acupoints: acupoints}, nil
}

// ListAcupoints lists every acupoint, or only those on rawPart when it is set.
func (service *CatalogService) ListAcupoints(rawPart string) ([]models.AcupointMassage, error) {
	var filter *models.BodyPart
	if trimmed := strings.ToLower(strings.TrimSpace(rawPart)); trimmed != "" {
		part := models.BodyPart(trimmed)
		if !part.Valid() {
			return nil, newFieldValidationError("body_part", "unknown body part")
		}
		filter = &part
	}

	acupoints, err := service.acupoints.List(filter)
	if err != nil {
		return nil, fmt.Errorf("list acupoints: %w", err)
	}
	return acupoints, nil
}

func (service *CatalogService) AcupointByID(acupointID uint) (models.AcupointMassage, error) {
	acupoint, found, err := service.acupoints.FindByID(acupointID)
	if err != nil {
		return models.AcupointMassage{}, fmt.Errorf("load acupoint %d: %w", acupointID, err)
	}
	if !found {
		return models.AcupointMassage{}, ErrNotFound
	}
	return acupoint, nil
}

// CurrentTimeSlot resolves now in the service location. found is false when
// the stored slots leave that instant uncovered.
func (service *CatalogService) CurrentTimeSlot(now time.Time) (models.TimeSlot, bool, error) {
	slots, err := service.ListTimeSlots()
	if err != nil {
		return models.TimeSlot{}, false, err
	}
	slot, found := ResolveTimeSlotAt(now, service.location, slots)
	return slot, found, nil
}

func (service *CatalogService) HomeOverview(now time.Time) (HomeOverview, error) {
	slots, err := service.ListTimeSlots()
	if err != nil {
		return HomeOverview{}, err
	}

	overview := HomeOverview{Now: now.In(service.location), Slots: slots}
	if slot, found := ResolveTimeSlotAt(now, service.location, slots); found {
		overview.Current = &slot
	}
	return overview, nil
}
