package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/IsaacSuo/Web-health/internal/catalog"
	"github.com/IsaacSuo/Web-health/internal/db"
	"github.com/IsaacSuo/Web-health/internal/i18n"
	"github.com/IsaacSuo/Web-health/internal/models"
	"github.com/IsaacSuo/Web-health/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	testSecretKey = "0123456789abcdef0123456789abcdef"
	testPassword  = "StrongPass1"
)

var testLocation = time.FixedZone("CST", 8*60*60)

// testNow falls in shen (15:00-17:00) in testLocation.
var testNow = time.Date(2024, time.March, 10, 15, 30, 0, 0, testLocation)

type testApp struct {
	app      *fiber.App
	database *gorm.DB
	now      time.Time
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithOptions(t, true)
}

func newTestAppWithOptions(t *testing.T, seed bool) *testApp {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "webhealth-api-test.db")
	database, err := db.OpenSQLite(databasePath, zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	if seed {
		content, err := catalog.Default()
		if err != nil {
			t.Fatalf("load catalog: %v", err)
		}
		repositories := db.NewRepositories(database)
		if _, err := services.NewSeedService(repositories.TimeSlots, repositories.Acupoints).Apply(content); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}

	i18nManager, err := i18n.NewManager(i18n.LangZH)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	harness := &testApp{database: database, now: testNow}
	handler, err := NewHandler(database, Options{
		SecretKey: testSecretKey,
		Location:  testLocation,
		I18n:      i18nManager,
		Logger:    zerolog.Nop(),
		Now:       func() time.Time { return harness.now },
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	harness.app = NewApp(handler, nil)
	return harness
}

func (harness *testApp) do(t *testing.T, request *http.Request) *http.Response {
	t.Helper()
	response, err := harness.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", request.Method, request.URL.Path, err)
	}
	return response
}

func (harness *testApp) doJSON(t *testing.T, method string, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return harness.do(t, request)
}

func (harness *testApp) doForm(t *testing.T, method string, path string, values url.Values, token string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return harness.do(t, request)
}

// register creates an account and returns its bearer token.
func (harness *testApp) register(t *testing.T, email string) string {
	t.Helper()

	response := harness.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": testPassword,
	}, "")
	payload := decodeBody(t, response)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%v)", email, response.StatusCode, payload)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("register: expected token in response")
	}
	return token
}

func (harness *testApp) slotID(t *testing.T, name models.SlotName) uint {
	t.Helper()

	slot, found, err := db.NewTimeSlotRepository(harness.database).FindByName(name)
	if err != nil || !found {
		t.Fatalf("load slot %s: found=%v err=%v", name, found, err)
	}
	return slot.ID
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()
	defer response.Body.Close()

	payload := map[string]any{}
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
	return payload
}

func assertStatus(t *testing.T, response *http.Response, want int) map[string]any {
	t.Helper()
	payload := decodeBody(t, response)
	if response.StatusCode != want {
		t.Fatalf("expected status %d, got %d (%v)", want, response.StatusCode, payload)
	}
	return payload
}

func fieldsOf(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	fields, ok := payload["fields"].(map[string]any)
	if !ok {
		t.Fatalf("expected validation fields in %v", payload)
	}
	return fields
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
