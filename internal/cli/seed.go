package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/IsaacSuo/Web-health/internal/catalog"
	"github.com/IsaacSuo/Web-health/internal/db"
	"github.com/IsaacSuo/Web-health/internal/metrics"
	"github.com/IsaacSuo/Web-health/internal/services"
	"gorm.io/gorm"
)

type SeedCmd struct {
	Catalog    string `help:"YAML catalog to apply instead of the built-in one." type:"existingfile"`
	AdminEmail string `help:"Create or promote this account to admin." name:"admin-email"`
}

func (cmd *SeedCmd) Run(ctx *Context) error {
	content, err := loadCatalog(cmd.Catalog)
	if err != nil {
		return err
	}

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

	report, err := applyCatalog(database, content)
	if err != nil {
		return err
	}
	ctx.printf("Time slots: %d created, %d updated, %d unchanged\n",
		report.TimeSlotsCreated, report.TimeSlotsUpdated, report.TimeSlotsUnchanged)
	ctx.printf("Acupoints: %d created, %d updated, %d unchanged\n",
		report.AcupointsCreated, report.AcupointsUpdated, report.AcupointsUnchanged)

	if cmd.AdminEmail == "" {
		return nil
	}
	return ctx.ensureAdmin(database, cmd.AdminEmail)
}

func loadCatalog(path string) (catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return catalog.Parse(data)
}

func applyCatalog(database *gorm.DB, content catalog.Catalog) (services.SeedReport, error) {
	repositories := db.NewRepositories(database)
	report, err := services.NewSeedService(repositories.TimeSlots, repositories.Acupoints).Apply(content)
	if err != nil {
		return services.SeedReport{}, fmt.Errorf("seed catalog: %w", err)
	}
	metrics.RecordSeed("time_slot", report.TimeSlotsCreated, report.TimeSlotsUpdated, report.TimeSlotsUnchanged)
	metrics.RecordSeed("acupoint", report.AcupointsCreated, report.AcupointsUpdated, report.AcupointsUnchanged)
	return report, nil
}

func (ctx *Context) ensureAdmin(database *gorm.DB, email string) error {
	users := db.NewRepositories(database).Users
	exists, err := users.ExistsByNormalizedEmail(services.NormalizeAuthEmail(email))
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	password := ""
	if !exists {
		password, err = ctx.promptNewPassword()
		if err != nil {
			return err
		}
	}

	user, created, err := services.NewSetupService(users).EnsureAdmin(email, password, ctx.now())
	if err != nil {
		return fmt.Errorf("admin account: %w", err)
	}
	if created {
		ctx.printf("Admin account %s created\n", user.Email)
	} else {
		ctx.printf("Admin account %s ready\n", user.Email)
	}
	return nil
}

func (ctx *Context) promptNewPassword() (string, error) {
	password, err := ctx.readPassword("Admin password: ")
	if err != nil {
		return "", err
	}
	confirm, err := ctx.readPassword("Repeat password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}
