package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IsaacSuo/Web-health/internal/db"
	"github.com/IsaacSuo/Web-health/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func setupCommandEnv(t *testing.T) string {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "webhealth-cli-test.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", databasePath)
	t.Setenv("DB_DSN", "")
	t.Setenv("TZ", "Asia/Shanghai")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("PORT", "")
	return databasePath
}

func openTestDatabase(t *testing.T, databasePath string) *db.Repositories {
	t.Helper()

	database, err := db.OpenSQLite(databasePath, zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})
	return db.NewRepositories(database)
}

func createTestUser(t *testing.T, databasePath string, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("StrongPass1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Email: email, PasswordHash: string(hash), Role: models.RoleOwner, CreatedAt: fixedNow()}
	if err := openTestDatabase(t, databasePath).Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func loadTestUser(t *testing.T, databasePath string, userID uint) models.User {
	t.Helper()

	user, err := openTestDatabase(t, databasePath).Users.FindByID(userID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	return user
}

func TestMigrateCommandCreatesSchema(t *testing.T) {
	databasePath := setupCommandEnv(t)

	var output bytes.Buffer
	if err := (&MigrateCmd{}).Run(&Context{Stdout: &output}); err != nil {
		t.Fatalf("migrate returned error: %v", err)
	}
	if !strings.Contains(output.String(), databasePath) {
		t.Fatalf("expected database path in output, got %q", output.String())
	}

	count, err := openTestDatabase(t, databasePath).Users.CountUsers()
	if err != nil || count != 0 {
		t.Fatalf("expected empty users table, got %d (%v)", count, err)
	}
}

func TestSeedCommandIsIdempotent(t *testing.T) {
	databasePath := setupCommandEnv(t)

	var first bytes.Buffer
	if err := (&SeedCmd{}).Run(&Context{Stdout: &first, Now: fixedNow}); err != nil {
		t.Fatalf("first seed returned error: %v", err)
	}
	if !strings.Contains(first.String(), "Time slots: 12 created, 0 updated, 0 unchanged") {
		t.Fatalf("unexpected first seed report: %q", first.String())
	}

	var second bytes.Buffer
	if err := (&SeedCmd{}).Run(&Context{Stdout: &second, Now: fixedNow}); err != nil {
		t.Fatalf("second seed returned error: %v", err)
	}
	if !strings.Contains(second.String(), "Time slots: 0 created, 0 updated, 12 unchanged") {
		t.Fatalf("expected re-seed to change nothing, got %q", second.String())
	}

	slots, err := openTestDatabase(t, databasePath).TimeSlots.ListOrdered()
	if err != nil || len(slots) != 12 {
		t.Fatalf("expected 12 time slots, got %d (%v)", len(slots), err)
	}
}

func TestSeedCommandAppliesCatalogFile(t *testing.T) {
	setupCommandEnv(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("time_slots: []\n"), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if err := (&SeedCmd{Catalog: path}).Run(&Context{Stdout: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected a catalog without twelve slots to be rejected")
	}
}

func TestSeedCommandBootstrapsAdmin(t *testing.T) {
	databasePath := setupCommandEnv(t)

	prompts := 0
	ctx := &Context{
		Stdout: &bytes.Buffer{},
		Now:    fixedNow,
		ReadPassword: func(string) (string, error) {
			prompts++
			return "AdminPass1", nil
		},
	}
	if err := (&SeedCmd{AdminEmail: "Admin@Example.com"}).Run(ctx); err != nil {
		t.Fatalf("seed with admin returned error: %v", err)
	}
	if prompts != 2 {
		t.Fatalf("expected password and confirmation prompts, got %d", prompts)
	}

	users := openTestDatabase(t, databasePath).Users
	admin, err := users.FindByNormalizedEmail("admin@example.com")
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %q", admin.Role)
	}

	prompts = 0
	if err := (&SeedCmd{AdminEmail: "admin@example.com"}).Run(ctx); err != nil {
		t.Fatalf("re-running seed for an existing admin returned error: %v", err)
	}
	if prompts != 0 {
		t.Fatalf("expected no prompt for an existing account, got %d", prompts)
	}
}

func TestSeedCommandRejectsMismatchedAdminPasswords(t *testing.T) {
	setupCommandEnv(t)

	answers := []string{"AdminPass1", "AdminPass2"}
	ctx := &Context{
		Stdout: &bytes.Buffer{},
		Now:    fixedNow,
		ReadPassword: func(string) (string, error) {
			answer := answers[0]
			answers = answers[1:]
			return answer, nil
		},
	}
	if err := (&SeedCmd{AdminEmail: "admin@example.com"}).Run(ctx); err == nil {
		t.Fatal("expected mismatched passwords to fail")
	}
}

func TestNowCommandPrintsCurrentTimeSlot(t *testing.T) {
	setupCommandEnv(t)
	if err := (&SeedCmd{}).Run(&Context{Stdout: &bytes.Buffer{}, Now: fixedNow}); err != nil {
		t.Fatalf("seed returned error: %v", err)
	}

	var output bytes.Buffer
	if err := (&NowCmd{}).Run(&Context{Stdout: &output, Now: fixedNow}); err != nil {
		t.Fatalf("now returned error: %v", err)
	}
	if !strings.HasPrefix(output.String(), "15:30 申时 (shen) 15:00-17:00") {
		t.Fatalf("expected shen for 15:30 Shanghai time, got %q", output.String())
	}

	output.Reset()
	if err := (&NowCmd{At: "00:00"}).Run(&Context{Stdout: &output, Now: fixedNow}); err != nil {
		t.Fatalf("now --at returned error: %v", err)
	}
	if !strings.HasPrefix(output.String(), "00:00 子时 (zi) 23:00-01:00") {
		t.Fatalf("expected zi at midnight, got %q", output.String())
	}

	if err := (&NowCmd{At: "25:00"}).Run(&Context{Stdout: &bytes.Buffer{}, Now: fixedNow}); err == nil {
		t.Fatal("expected an invalid --at value to fail")
	}
}

func TestNowCommandWithoutCatalog(t *testing.T) {
	setupCommandEnv(t)

	err := (&NowCmd{}).Run(&Context{Stdout: &bytes.Buffer{}, Now: fixedNow})
	if !errors.Is(err, errNoCurrentTimeSlot) {
		t.Fatalf("expected errNoCurrentTimeSlot, got %v", err)
	}
}

func TestServeCommandRequiresSecretKey(t *testing.T) {
	setupCommandEnv(t)
	t.Setenv("SECRET_KEY", "change_me_in_production")

	if err := (&ServeCmd{}).Run(&Context{Stdout: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected serve to refuse an insecure secret")
	}
}
