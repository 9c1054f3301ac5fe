package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/IsaacSuo/Web-health/internal/models"
)

func newTinnitusLogServiceForTest(location *time.Location) (*TinnitusLogService, *tinnitusLogRepositoryStub, *timeSlotRepositoryStub, *reminderRepositoryStub) {
	logs := newTinnitusLogRepositoryStub()
	slots := newCatalogTimeSlotStub()
	reminders := newReminderRepositoryStub()
	return NewTinnitusLogService(logs, slots, reminders, location), logs, slots, reminders
}

func validTinnitusLogInput() TinnitusLogInput {
	return TinnitusLogInput{
		Severity:        3,
		Frequency:       "intermittent",
		DurationMinutes: 30,
	}
}

func TestTinnitusLogCreateDefaultsDateToToday(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*60*60)
	service, logs, _, _ := newTinnitusLogServiceForTest(shanghai)

	// 2025-03-14 18:00 UTC is already 2025-03-15 in UTC+8.
	now := time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)
	entry, err := service.Create(AuthenticatedIdentity(7), validTinnitusLogInput(), now)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	want := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if !entry.Date.Equal(want) {
		t.Fatalf("expected date %s, got %s", want, entry.Date)
	}
	if entry.UserID != 7 || entry.ID == 0 {
		t.Fatalf("expected stored entry owned by user 7, got %+v", entry)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected one stored entry, got %d", len(logs.entries))
	}
}

func TestTinnitusLogCreateKeepsExplicitDateAndSlot(t *testing.T) {
	service, _, slots, _ := newTinnitusLogServiceForTest(time.UTC)
	chou := slots.byName(models.SlotChou)

	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	sleep := 6
	input := validTinnitusLogInput()
	input.Date = &date
	input.TimeSlotID = &chou.ID
	input.SleepQuality = &sleep
	input.Mood = "  平静  "
	input.Notes = "耳鸣\n 夜间加重 "

	entry, err := service.Create(AuthenticatedIdentity(1), input, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if !entry.Date.Equal(date) {
		t.Fatalf("expected explicit date kept, got %s", entry.Date)
	}
	if entry.TimeSlot == nil || entry.TimeSlot.Name != models.SlotChou {
		t.Fatalf("expected chou attached, got %+v", entry.TimeSlot)
	}
	if entry.Mood != "  平静  " || entry.Notes != "耳鸣\n 夜间加重 " {
		t.Fatalf("expected free text stored as submitted, got mood=%q notes=%q", entry.Mood, entry.Notes)
	}
}

func TestTinnitusLogCreateRejectsUnauthenticated(t *testing.T) {
	service, logs, _, _ := newTinnitusLogServiceForTest(time.UTC)

	_, err := service.Create(AnonymousIdentity(), validTinnitusLogInput(), time.Now())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(logs.entries) != 0 {
		t.Fatal("expected nothing stored")
	}
}

func TestTinnitusLogCreateNamesEveryInvalidField(t *testing.T) {
	service, logs, _, _ := newTinnitusLogServiceForTest(time.UTC)

	unknownSlot := uint(999)
	sleep := 11
	input := TinnitusLogInput{
		Severity:        6,
		Frequency:       "constant",
		DurationMinutes: 0,
		SleepQuality:    &sleep,
		Mood:            strings.Repeat("静", 101),
		TimeSlotID:      &unknownSlot,
	}

	_, err := service.Create(AuthenticatedIdentity(1), input, time.Now())
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"severity", "frequency", "duration_minutes", "sleep_quality", "mood", "time_slot"} {
		if !validation.HasField(field) {
			t.Fatalf("expected %s to be reported, got %v", field, validation.FieldNames())
		}
	}
	if len(logs.entries) != 0 {
		t.Fatal("expected nothing stored")
	}
}

func TestTinnitusLogCreateRejectsSeveritySix(t *testing.T) {
	service, _, _, _ := newTinnitusLogServiceForTest(time.UTC)
	input := validTinnitusLogInput()
	input.Severity = 6

	_, err := service.Create(AuthenticatedIdentity(1), input, time.Now())
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if names := validation.FieldNames(); len(names) != 1 || names[0] != "severity" {
		t.Fatalf("expected only severity reported, got %v", names)
	}
}

func TestTinnitusLogCreateWrapsStorageError(t *testing.T) {
	service, logs, _, _ := newTinnitusLogServiceForTest(time.UTC)
	storageErr := errors.New("write failure")
	logs.createErr = storageErr

	_, err := service.Create(AuthenticatedIdentity(1), validTinnitusLogInput(), time.Now())
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
	if errors.Is(err, ErrValidation) {
		t.Fatalf("storage failure must not look like validation: %v", err)
	}
}

func TestTinnitusLogListOrdersAndLimits(t *testing.T) {
	service, _, slots, _ := newTinnitusLogServiceForTest(time.UTC)
	wu := slots.byName(models.SlotWu)
	identity := AuthenticatedIdentity(3)

	for _, day := range []int{2, 5, 5, 1} {
		date := time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC)
		input := validTinnitusLogInput()
		input.Date = &date
		if day == 5 {
			input.TimeSlotID = &wu.ID
		}
		if _, err := service.Create(identity, input, time.Now()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := service.Create(AuthenticatedIdentity(4), validTinnitusLogInput(), time.Now()); err != nil {
		t.Fatalf("create other user log: %v", err)
	}

	all, err := service.List(identity, TinnitusLogFilter{})
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected only own 4 logs, got %d", len(all))
	}
	if all[0].Date.Day() != 5 || all[1].Date.Day() != 5 || all[0].ID < all[1].ID || all[3].Date.Day() != 1 {
		t.Fatalf("expected date desc then created desc, got %+v", all)
	}

	limited, err := service.Recent(identity, 2)
	if err != nil {
		t.Fatalf("Recent() unexpected error: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(limited))
	}

	from := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)
	ranged, err := service.List(identity, TinnitusLogFilter{From: &from, To: &to, TimeSlotID: &wu.ID})
	if err != nil {
		t.Fatalf("List() with filter unexpected error: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("expected 2 wu logs in range, got %d", len(ranged))
	}
}

func TestTinnitusLogListRejectsInvertedRange(t *testing.T) {
	service, _, _, _ := newTinnitusLogServiceForTest(time.UTC)
	from := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := service.List(AuthenticatedIdentity(1), TinnitusLogFilter{From: &from, To: &to})
	var validation *ValidationError
	if !errors.As(err, &validation) || !validation.HasField("date_to") {
		t.Fatalf("expected date_to validation error, got %v", err)
	}

	if _, err := service.List(AnonymousIdentity(), TinnitusLogFilter{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTinnitusHelperOverview(t *testing.T) {
	service, logs, slots, reminders := newTinnitusLogServiceForTest(time.UTC)

	anonymous, err := service.HelperOverview(AnonymousIdentity())
	if err != nil {
		t.Fatalf("HelperOverview(anonymous) unexpected error: %v", err)
	}
	if anonymous.Authenticated || len(anonymous.RecentLogs) != 0 || len(anonymous.ActiveReminders) != 0 {
		t.Fatalf("expected empty overview for anonymous, got %+v", anonymous)
	}

	identity := AuthenticatedIdentity(9)
	for day := 1; day <= 7; day++ {
		date := time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC)
		input := validTinnitusLogInput()
		input.Date = &date
		if _, err := service.Create(identity, input, time.Now()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	reminderService := NewReminderService(reminders, slots)
	if _, _, err := reminderService.SetPreference(identity, slots.byName(models.SlotHai).ID, true, ""); err != nil {
		t.Fatalf("set reminder: %v", err)
	}
	if _, _, err := reminderService.SetPreference(identity, slots.byName(models.SlotZi).ID, false, ""); err != nil {
		t.Fatalf("set reminder: %v", err)
	}

	overview, err := service.HelperOverview(identity)
	if err != nil {
		t.Fatalf("HelperOverview() unexpected error: %v", err)
	}
	if !overview.Authenticated || len(overview.RecentLogs) != HelperRecentLogLimit || overview.TotalLogs != 7 {
		t.Fatalf("expected 5 of 7 logs, got %d of %d", len(overview.RecentLogs), overview.TotalLogs)
	}
	if logs.lastLimit != HelperRecentLogLimit {
		t.Fatalf("expected limit %d passed to store, got %d", HelperRecentLogLimit, logs.lastLimit)
	}
	if overview.RecentLogs[0].Date.Day() != 7 {
		t.Fatalf("expected newest log first, got %s", overview.RecentLogs[0].Date)
	}
	if len(overview.ActiveReminders) != 1 {
		t.Fatalf("expected only the active reminder, got %d", len(overview.ActiveReminders))
	}
}

func TestTinnitusLogGetIsScopedToOwner(t *testing.T) {
	service, _, _, _ := newTinnitusLogServiceForTest(time.UTC)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	entry, err := service.Create(AuthenticatedIdentity(3), validTinnitusLogInput(), now)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	loaded, err := service.Get(AuthenticatedIdentity(3), entry.ID)
	if err != nil || loaded.ID != entry.ID {
		t.Fatalf("expected owner to load entry %d, got %+v (%v)", entry.ID, loaded, err)
	}
	if _, err := service.Get(AuthenticatedIdentity(4), entry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user, got %v", err)
	}
	if _, err := service.Get(AnonymousIdentity(), entry.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for anonymous caller, got %v", err)
	}
}
