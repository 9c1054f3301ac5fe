package catalog

import (
	"strings"
	"testing"

	"github.com/IsaacSuo/Web-health/internal/models"
)

func TestDefaultCatalogTilesTheDay(t *testing.T) {
	t.Parallel()

	parsed, err := Default()
	if err != nil {
		t.Fatalf("Default() unexpected error: %v", err)
	}
	if len(parsed.TimeSlots) != 12 {
		t.Fatalf("expected 12 time slots, got %d", len(parsed.TimeSlots))
	}
	if len(parsed.Acupoints) != 8 {
		t.Fatalf("expected 8 acupoints, got %d", len(parsed.Acupoints))
	}

	ear := 0
	for _, entry := range parsed.Acupoints {
		if entry.BodyPart == string(models.BodyPartEar) {
			ear++
		}
	}
	if ear != 3 {
		t.Fatalf("expected 3 ear acupoints, got %d", ear)
	}
}

func TestDefaultCatalogZiWrapsMidnight(t *testing.T) {
	t.Parallel()

	parsed, err := Default()
	if err != nil {
		t.Fatalf("Default() unexpected error: %v", err)
	}
	slot, err := parsed.TimeSlots[0].Model()
	if err != nil {
		t.Fatalf("Model() unexpected error: %v", err)
	}
	if slot.Name != models.SlotZi || slot.ChineseName != "子时" {
		t.Fatalf("first slot = %s/%s, want zi/子时", slot.Name, slot.ChineseName)
	}
	if slot.StartTime != models.NewTimeOfDay(23, 0, 0) || slot.EndTime != models.NewTimeOfDay(1, 0, 0) {
		t.Fatalf("zi interval = %s-%s, want 23:00-01:00", slot.StartTime, slot.EndTime)
	}
}

func TestValidateTilingRejectsGapsAndOverlaps(t *testing.T) {
	t.Parallel()

	parsed, err := Default()
	if err != nil {
		t.Fatalf("Default() unexpected error: %v", err)
	}
	slots, err := parsed.TimeSlotModels()
	if err != nil {
		t.Fatalf("TimeSlotModels() unexpected error: %v", err)
	}

	gap := append([]models.TimeSlot(nil), slots...)
	gap[1].EndTime = models.NewTimeOfDay(2, 30, 0)
	if err := ValidateTiling(gap); err == nil {
		t.Fatal("expected gap to be rejected")
	}

	noWrap := append([]models.TimeSlot(nil), slots...)
	noWrap[0].StartTime = models.NewTimeOfDay(0, 0, 0)
	if err := ValidateTiling(noWrap); err == nil {
		t.Fatal("expected missing wraparound to be rejected")
	}

	if err := ValidateTiling(slots[:11]); err == nil {
		t.Fatal("expected short catalog to be rejected")
	}
}

func TestParseRejectsUnknownReferences(t *testing.T) {
	t.Parallel()

	raw := strings.Replace(string(embeddedCatalog), "time_slots: [chou]", "time_slots: [noon]", 1)
	if raw == string(embeddedCatalog) {
		t.Fatal("fixture replacement did not apply")
	}
	if _, err := Parse([]byte(raw)); err == nil || !strings.Contains(err.Error(), "unknown time slot") {
		t.Fatalf("expected unknown time slot error, got %v", err)
	}

	badPart := strings.Replace(string(embeddedCatalog), `body_part: "hand"`, `body_part: "knee"`, 1)
	if _, err := Parse([]byte(badPart)); err == nil {
		t.Fatal("expected unknown body part to be rejected")
	}
}
