package cli

import (
	"errors"
	"fmt"

	"github.com/IsaacSuo/Web-health/internal/db"
	"github.com/IsaacSuo/Web-health/internal/models"
	"github.com/IsaacSuo/Web-health/internal/services"
)

var errNoCurrentTimeSlot = errors.New("no time slot covers this time; run `webhealth seed` first")

type NowCmd struct {
	At string `help:"Resolve this HH:MM instead of the current local time."`
}

func (cmd *NowCmd) Run(ctx *Context) error {
	cfg, logger, err := ctx.load()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close(database)
	}()

	at := models.TimeOfDayOf(ctx.now().In(cfg.Location))
	if cmd.At != "" {
		at, err = models.ParseTimeOfDay(cmd.At)
		if err != nil {
			return err
		}
	}

	slots, err := db.NewRepositories(database).TimeSlots.ListOrdered()
	if err != nil {
		return fmt.Errorf("load time slots: %w", err)
	}
	slot, ok := services.ResolveTimeSlot(at, slots)
	if !ok {
		return errNoCurrentTimeSlot
	}

	ctx.printf("%s %s (%s) %s-%s\n", at.Clock(), slot.ChineseName, slot.Name, slot.StartTime.Clock(), slot.EndTime.Clock())
	ctx.printf("%s · %s\n", slot.Meridian, slot.Organ)
	if slot.HealthTips != "" {
		ctx.printf("%s\n", slot.HealthTips)
	}
	return nil
}
