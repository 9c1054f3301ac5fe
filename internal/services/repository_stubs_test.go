package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/IsaacSuo/Web-health/internal/catalog"
	"github.com/IsaacSuo/Web-health/internal/models"
	"gorm.io/gorm"
)

type timeSlotRepositoryStub struct {
	slots     map[uint]models.TimeSlot
	nextID    uint
	listErr   error
	findErr   error
	createErr error
	updates   map[uint]map[string]any
	// racingName makes the first Create of that slot lose to another writer.
	racingName models.SlotName
}

func newTimeSlotRepositoryStub(slots ...models.TimeSlot) *timeSlotRepositoryStub {
	stub := &timeSlotRepositoryStub{
		slots:   make(map[uint]models.TimeSlot),
		nextID:  1,
		updates: make(map[uint]map[string]any),
	}
	for _, slot := range slots {
		stub.insert(slot)
	}
	return stub
}

func newCatalogTimeSlotStub() *timeSlotRepositoryStub {
	content, err := catalog.Default()
	if err != nil {
		panic(err)
	}
	slots, err := content.TimeSlotModels()
	if err != nil {
		panic(err)
	}
	return newTimeSlotRepositoryStub(slots...)
}

func (stub *timeSlotRepositoryStub) insert(slot models.TimeSlot) models.TimeSlot {
	slot.ID = stub.nextID
	stub.nextID++
	stub.slots[slot.ID] = slot
	return slot
}

func (stub *timeSlotRepositoryStub) byName(name models.SlotName) models.TimeSlot {
	for _, slot := range stub.slots {
		if slot.Name == name {
			return slot
		}
	}
	panic(fmt.Sprintf("slot %s not seeded", name))
}

func (stub *timeSlotRepositoryStub) ListOrdered() ([]models.TimeSlot, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	slots := make([]models.TimeSlot, 0, len(stub.slots))
	for _, slot := range stub.slots {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots, nil
}

func (stub *timeSlotRepositoryStub) FindByID(slotID uint) (models.TimeSlot, bool, error) {
	if stub.findErr != nil {
		return models.TimeSlot{}, false, stub.findErr
	}
	slot, ok := stub.slots[slotID]
	return slot, ok, nil
}

func (stub *timeSlotRepositoryStub) FindByName(name models.SlotName) (models.TimeSlot, bool, error) {
	if stub.findErr != nil {
		return models.TimeSlot{}, false, stub.findErr
	}
	for _, slot := range stub.slots {
		if slot.Name == name {
			return slot, true, nil
		}
	}
	return models.TimeSlot{}, false, nil
}

func (stub *timeSlotRepositoryStub) ListByNames(names []models.SlotName) ([]models.TimeSlot, error) {
	wanted := make(map[models.SlotName]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}
	slots := make([]models.TimeSlot, 0, len(wanted))
	for _, slot := range stub.slots {
		if _, ok := wanted[slot.Name]; ok {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

func (stub *timeSlotRepositoryStub) Create(slot *models.TimeSlot) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	if stub.racingName != "" && slot.Name == stub.racingName {
		stub.racingName = ""
		stub.insert(*slot)
		return fmt.Errorf("%w: UNIQUE constraint failed: time_slots.name", gorm.ErrDuplicatedKey)
	}
	*slot = stub.insert(*slot)
	return nil
}

func (stub *timeSlotRepositoryStub) UpdateFields(slotID uint, updates map[string]any) error {
	slot := stub.slots[slotID]
	for column, value := range updates {
		switch column {
		case "chinese_name":
			slot.ChineseName = value.(string)
		case "meridian":
			slot.Meridian = value.(string)
		case "organ":
			slot.Organ = value.(string)
		case "start_time":
			slot.StartTime = value.(models.TimeOfDay)
		case "end_time":
			slot.EndTime = value.(models.TimeOfDay)
		case "description":
			slot.Description = value.(string)
		case "health_tips":
			slot.HealthTips = value.(string)
		case "case_suggestions":
			slot.CaseSuggestions = value.(string)
		case "food_recommendations":
			slot.FoodRecommendations = value.(string)
		default:
			return fmt.Errorf("unexpected column %s", column)
		}
	}
	stub.slots[slotID] = slot
	stub.updates[slotID] = updates
	return nil
}

type acupointRepositoryStub struct {
	acupoints map[uint]models.AcupointMassage
	nextID    uint
	replaced  int
	// racingName makes the first Create of that acupoint lose to another writer.
	racingName string
}

func newAcupointRepositoryStub() *acupointRepositoryStub {
	return &acupointRepositoryStub{acupoints: make(map[uint]models.AcupointMassage), nextID: 1}
}

func (stub *acupointRepositoryStub) sorted() []models.AcupointMassage {
	acupoints := make([]models.AcupointMassage, 0, len(stub.acupoints))
	for _, acupoint := range stub.acupoints {
		acupoints = append(acupoints, acupoint)
	}
	sort.Slice(acupoints, func(i, j int) bool {
		if acupoints[i].BodyPart == acupoints[j].BodyPart {
			return acupoints[i].Name < acupoints[j].Name
		}
		return acupoints[i].BodyPart < acupoints[j].BodyPart
	})
	return acupoints
}

func (stub *acupointRepositoryStub) List(part *models.BodyPart) ([]models.AcupointMassage, error) {
	acupoints := make([]models.AcupointMassage, 0)
	for _, acupoint := range stub.sorted() {
		if part == nil || acupoint.BodyPart == *part {
			acupoints = append(acupoints, acupoint)
		}
	}
	return acupoints, nil
}

func (stub *acupointRepositoryStub) FindByID(acupointID uint) (models.AcupointMassage, bool, error) {
	acupoint, ok := stub.acupoints[acupointID]
	return acupoint, ok, nil
}

func (stub *acupointRepositoryStub) FindByName(name string) (models.AcupointMassage, bool, error) {
	for _, acupoint := range stub.acupoints {
		if acupoint.Name == name {
			return acupoint, true, nil
		}
	}
	return models.AcupointMassage{}, false, nil
}

func (stub *acupointRepositoryStub) ListByTimeSlot(slotID uint) ([]models.AcupointMassage, error) {
	acupoints := make([]models.AcupointMassage, 0)
	for _, acupoint := range stub.sorted() {
		for _, slot := range acupoint.TimeSlots {
			if slot.ID == slotID {
				acupoints = append(acupoints, acupoint)
				break
			}
		}
	}
	return acupoints, nil
}

func (stub *acupointRepositoryStub) Create(acupoint *models.AcupointMassage) error {
	if stub.racingName != "" && acupoint.Name == stub.racingName {
		stub.racingName = ""
		winner := *acupoint
		winner.ID = stub.nextID
		winner.TimeSlots = nil
		stub.nextID++
		stub.acupoints[winner.ID] = winner
		return fmt.Errorf("%w: UNIQUE constraint failed: acupoint_massages.name", gorm.ErrDuplicatedKey)
	}
	acupoint.ID = stub.nextID
	stub.nextID++
	stored := *acupoint
	stored.TimeSlots = nil
	stub.acupoints[stored.ID] = stored
	return nil
}

func (stub *acupointRepositoryStub) UpdateFields(acupointID uint, updates map[string]any) error {
	acupoint := stub.acupoints[acupointID]
	for column, value := range updates {
		switch column {
		case "body_part":
			acupoint.BodyPart = value.(models.BodyPart)
		case "location_description":
			acupoint.LocationDescription = value.(string)
		case "massage_method":
			acupoint.MassageMethod = value.(string)
		case "benefits":
			acupoint.Benefits = value.(string)
		case "image":
			acupoint.Image = value.(string)
		default:
			return fmt.Errorf("unexpected column %s", column)
		}
	}
	stub.acupoints[acupointID] = acupoint
	return nil
}

func (stub *acupointRepositoryStub) ReplaceTimeSlots(acupoint *models.AcupointMassage, slots []models.TimeSlot) error {
	stored := stub.acupoints[acupoint.ID]
	stored.TimeSlots = append([]models.TimeSlot(nil), slots...)
	stub.acupoints[acupoint.ID] = stored
	stub.replaced++
	return nil
}

type tinnitusLogRepositoryStub struct {
	entries   []models.TinnitusLog
	nextID    uint
	createErr error
	lastLimit int
}

func newTinnitusLogRepositoryStub() *tinnitusLogRepositoryStub {
	return &tinnitusLogRepositoryStub{nextID: 1}
}

func (stub *tinnitusLogRepositoryStub) Create(entry *models.TinnitusLog) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	entry.ID = stub.nextID
	stub.nextID++
	entry.CreatedAt = time.Date(2025, 1, 1, 0, 0, int(entry.ID), 0, time.UTC)
	stub.entries = append(stub.entries, *entry)
	return nil
}

func (stub *tinnitusLogRepositoryStub) List(userID uint, slotID *uint, from *time.Time, to *time.Time, limit int) ([]models.TinnitusLog, error) {
	stub.lastLimit = limit
	entries := make([]models.TinnitusLog, 0)
	for _, entry := range stub.entries {
		if entry.UserID != userID {
			continue
		}
		if slotID != nil && (entry.TimeSlotID == nil || *entry.TimeSlotID != *slotID) {
			continue
		}
		if from != nil && entry.Date.Before(*from) {
			continue
		}
		if to != nil && entry.Date.After(*to) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].Date.After(entries[j].Date)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (stub *tinnitusLogRepositoryStub) FindByIDForUser(userID uint, logID uint) (models.TinnitusLog, bool, error) {
	for _, entry := range stub.entries {
		if entry.ID == logID && entry.UserID == userID {
			return entry, true, nil
		}
	}
	return models.TinnitusLog{}, false, nil
}

func (stub *tinnitusLogRepositoryStub) CountByUser(userID uint) (int64, error) {
	var count int64
	for _, entry := range stub.entries {
		if entry.UserID == userID {
			count++
		}
	}
	return count, nil
}

type reminderRepositoryStub struct {
	reminders map[uint]models.Reminder
	nextID    uint
	// racingInsert simulates another writer inserting the same pair first.
	racingInsert bool
	createCalls  int
	updateCalls  int
	failSlotIDs  map[uint]error
}

func newReminderRepositoryStub() *reminderRepositoryStub {
	return &reminderRepositoryStub{
		reminders:   make(map[uint]models.Reminder),
		nextID:      1,
		failSlotIDs: make(map[uint]error),
	}
}

func (stub *reminderRepositoryStub) FindByUserAndSlot(userID uint, slotID uint) (models.Reminder, bool, error) {
	if err, ok := stub.failSlotIDs[slotID]; ok {
		return models.Reminder{}, false, err
	}
	for _, reminder := range stub.reminders {
		if reminder.UserID == userID && reminder.TimeSlotID == slotID {
			return reminder, true, nil
		}
	}
	return models.Reminder{}, false, nil
}

func (stub *reminderRepositoryStub) Create(reminder *models.Reminder) error {
	stub.createCalls++
	if stub.racingInsert {
		stub.racingInsert = false
		winner := models.Reminder{ID: stub.nextID, UserID: reminder.UserID, TimeSlotID: reminder.TimeSlotID, IsActive: !reminder.IsActive}
		stub.nextID++
		stub.reminders[winner.ID] = winner
		return fmt.Errorf("%w: UNIQUE constraint failed", gorm.ErrDuplicatedKey)
	}
	for _, existing := range stub.reminders {
		if existing.UserID == reminder.UserID && existing.TimeSlotID == reminder.TimeSlotID {
			return gorm.ErrDuplicatedKey
		}
	}
	reminder.ID = stub.nextID
	stub.nextID++
	stub.reminders[reminder.ID] = *reminder
	return nil
}

func (stub *reminderRepositoryStub) UpdatePreference(reminderID uint, active bool, message string) error {
	stub.updateCalls++
	reminder := stub.reminders[reminderID]
	reminder.IsActive = active
	reminder.CustomMessage = message
	stub.reminders[reminderID] = reminder
	return nil
}

func (stub *reminderRepositoryStub) ListByUser(userID uint, activeOnly bool) ([]models.Reminder, error) {
	reminders := make([]models.Reminder, 0)
	for _, reminder := range stub.reminders {
		if reminder.UserID != userID || (activeOnly && !reminder.IsActive) {
			continue
		}
		reminders = append(reminders, reminder)
	}
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].TimeSlotID < reminders[j].TimeSlotID
	})
	return reminders, nil
}

func (stub *reminderRepositoryStub) countFor(userID uint) int {
	count := 0
	for _, reminder := range stub.reminders {
		if reminder.UserID == userID {
			count++
		}
	}
	return count
}

type profileRepositoryStub struct {
	profiles     map[uint]models.UserProfile
	nextID       uint
	createCalls  int
	racingInsert bool
	replaced     *models.UserProfile
}

func newProfileRepositoryStub() *profileRepositoryStub {
	return &profileRepositoryStub{profiles: make(map[uint]models.UserProfile), nextID: 1}
}

func (stub *profileRepositoryStub) FindByUser(userID uint) (models.UserProfile, bool, error) {
	profile, ok := stub.profiles[userID]
	return profile, ok, nil
}

func (stub *profileRepositoryStub) Create(profile *models.UserProfile) error {
	stub.createCalls++
	if stub.racingInsert {
		stub.racingInsert = false
		stub.profiles[profile.UserID] = models.UserProfile{ID: stub.nextID, UserID: profile.UserID, ConstitutionType: "winner"}
		stub.nextID++
		return gorm.ErrDuplicatedKey
	}
	if _, exists := stub.profiles[profile.UserID]; exists {
		return gorm.ErrDuplicatedKey
	}
	profile.ID = stub.nextID
	stub.nextID++
	stub.profiles[profile.UserID] = *profile
	return nil
}

func (stub *profileRepositoryStub) Replace(profile *models.UserProfile) error {
	copied := *profile
	stub.replaced = &copied
	stub.profiles[profile.UserID] = copied
	return nil
}
