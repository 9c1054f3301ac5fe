// Package catalog holds the reference content for the twelve double-hours and
// the acupoints, embedded into the binary and reconciled into the store on seed.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/IsaacSuo/Web-health/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type TimeSlotEntry struct {
	Name                string `yaml:"name"`
	ChineseName         string `yaml:"chinese_name"`
	Meridian            string `yaml:"meridian"`
	Organ               string `yaml:"organ"`
	StartTime           string `yaml:"start_time"`
	EndTime             string `yaml:"end_time"`
	Description         string `yaml:"description"`
	HealthTips          string `yaml:"health_tips"`
	CaseSuggestions     string `yaml:"case_suggestions"`
	FoodRecommendations string `yaml:"food_recommendations"`
}

type AcupointEntry struct {
	Name                string   `yaml:"name"`
	BodyPart            string   `yaml:"body_part"`
	LocationDescription string   `yaml:"location_description"`
	MassageMethod       string   `yaml:"massage_method"`
	Benefits            string   `yaml:"benefits"`
	Image               string   `yaml:"image"`
	TimeSlots           []string `yaml:"time_slots"`
}

type Catalog struct {
	TimeSlots []TimeSlotEntry `yaml:"time_slots"`
	Acupoints []AcupointEntry `yaml:"acupoints"`
}

// Default returns the embedded catalog, validated.
func Default() (Catalog, error) {
	return Parse(embeddedCatalog)
}

func Parse(data []byte) (Catalog, error) {
	var parsed Catalog
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := parsed.Validate(); err != nil {
		return Catalog{}, err
	}
	return parsed, nil
}

func (entry TimeSlotEntry) Model() (models.TimeSlot, error) {
	name := models.SlotName(strings.TrimSpace(entry.Name))
	if !name.Valid() {
		return models.TimeSlot{}, fmt.Errorf("unknown time slot name %q", entry.Name)
	}
	start, err := models.ParseTimeOfDay(entry.StartTime)
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("time slot %s start: %w", name, err)
	}
	end, err := models.ParseTimeOfDay(entry.EndTime)
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("time slot %s end: %w", name, err)
	}

	return models.TimeSlot{
		Name:                name,
		ChineseName:         entry.ChineseName,
		Meridian:            entry.Meridian,
		Organ:               entry.Organ,
		StartTime:           start,
		EndTime:             end,
		Description:         entry.Description,
		HealthTips:          entry.HealthTips,
		CaseSuggestions:     entry.CaseSuggestions,
		FoodRecommendations: entry.FoodRecommendations,
	}, nil
}

// Model converts the entry; related time slots are resolved by the caller.
func (entry AcupointEntry) Model() (models.AcupointMassage, error) {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return models.AcupointMassage{}, errors.New("acupoint name is required")
	}
	if len([]rune(name)) > 50 {
		return models.AcupointMassage{}, fmt.Errorf("acupoint name %q is too long", name)
	}
	part := models.BodyPart(strings.TrimSpace(entry.BodyPart))
	if !part.Valid() {
		return models.AcupointMassage{}, fmt.Errorf("acupoint %s: unknown body part %q", name, entry.BodyPart)
	}

	return models.AcupointMassage{
		Name:                name,
		BodyPart:            part,
		LocationDescription: entry.LocationDescription,
		MassageMethod:       entry.MassageMethod,
		Benefits:            entry.Benefits,
		Image:               entry.Image,
	}, nil
}

func (entry AcupointEntry) SlotNames() []models.SlotName {
	names := make([]models.SlotName, 0, len(entry.TimeSlots))
	for _, raw := range entry.TimeSlots {
		names = append(names, models.SlotName(strings.TrimSpace(raw)))
	}
	return names
}

// Validate checks that the slots are the twelve known names and tile the
// 24-hour day with exactly one interval wrapping midnight.
func (catalog Catalog) Validate() error {
	slots, err := catalog.TimeSlotModels()
	if err != nil {
		return err
	}
	if err := ValidateTiling(slots); err != nil {
		return err
	}

	known := make(map[models.SlotName]struct{}, len(slots))
	for _, slot := range slots {
		known[slot.Name] = struct{}{}
	}

	seenAcupoints := make(map[string]struct{}, len(catalog.Acupoints))
	for _, entry := range catalog.Acupoints {
		acupoint, err := entry.Model()
		if err != nil {
			return err
		}
		if _, exists := seenAcupoints[acupoint.Name]; exists {
			return fmt.Errorf("duplicate acupoint %s", acupoint.Name)
		}
		seenAcupoints[acupoint.Name] = struct{}{}

		for _, slotName := range entry.SlotNames() {
			if _, ok := known[slotName]; !ok {
				return fmt.Errorf("acupoint %s references unknown time slot %q", acupoint.Name, slotName)
			}
		}
	}
	return nil
}

func (catalog Catalog) TimeSlotModels() ([]models.TimeSlot, error) {
	slots := make([]models.TimeSlot, 0, len(catalog.TimeSlots))
	for _, entry := range catalog.TimeSlots {
		slot, err := entry.Model()
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func ValidateTiling(slots []models.TimeSlot) error {
	if len(slots) != len(models.SlotNames()) {
		return fmt.Errorf("expected %d time slots, got %d", len(models.SlotNames()), len(slots))
	}

	seen := make(map[models.SlotName]struct{}, len(slots))
	wrapping := 0
	total := 0
	for _, slot := range slots {
		if _, exists := seen[slot.Name]; exists {
			return fmt.Errorf("duplicate time slot %s", slot.Name)
		}
		seen[slot.Name] = struct{}{}
		if slot.StartTime == slot.EndTime {
			return fmt.Errorf("time slot %s has an empty interval", slot.Name)
		}
		if slot.WrapsMidnight() {
			wrapping++
		}
		total += slot.Duration()
	}
	if wrapping != 1 {
		return fmt.Errorf("expected exactly one time slot wrapping midnight, got %d", wrapping)
	}
	if total != 24*60*60 {
		return fmt.Errorf("time slots cover %d seconds, want a full day", total)
	}

	ordered := make([]models.TimeSlot, len(slots))
	copy(ordered, slots)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartTime < ordered[j].StartTime
	})
	for index := range ordered {
		next := ordered[(index+1)%len(ordered)]
		if ordered[index].EndTime != next.StartTime {
			return fmt.Errorf("time slot %s ends at %s but %s starts at %s",
				ordered[index].Name, ordered[index].EndTime.Clock(), next.Name, next.StartTime.Clock())
		}
	}
	return nil
}
