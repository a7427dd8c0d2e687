package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"motorlot/internal/config"
	"motorlot/internal/database"
	"motorlot/internal/middleware"
	"motorlot/internal/models"
	"motorlot/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "test-admin-password"
)

// testFixtures mirrors the minimal catalog a listing needs, plus a second
// make/model pair.
type testFixtures struct {
	Make         models.Make
	Make2        models.Make
	Model        models.ModelName
	Model2       models.ModelName
	Color        models.Color
	Transmission models.Transmission
	Condition    models.Condition
	FuelType     models.FuelType
	DriveType    models.DriveType
	CarType      models.CarType
	Status       models.Status
	Feature      models.Feature
	Safety       models.SafetyFeature
}

func newTestServer(t *testing.T, opts ...func(*config.Config)) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		Port:          "8460",
		Env:           "test",
		JWTSecret:     "test-secret-at-least-32-chars-long!!",
		AdminUsername: testAdminUser,
		AdminPassword: testAdminPassword,
		MediaRoot:     t.TempDir(),
		MediaURL:      "/media/",
		PublicOrigin:  "http://localhost:8460",
	}
	for _, o := range opts {
		o(cfg)
	}
	middleware.InitMiddleware(cfg)

	media, err := storage.NewDiskStore(cfg.MediaRoot)
	require.NoError(t, err)

	srv, err := NewServerWithDeps(cfg, db, nil, media)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, e.Code, err)
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	srv.SetupRoutes(app)
	return srv, app, db
}

func seedTestData(t *testing.T, db *gorm.DB) *testFixtures {
	t.Helper()
	fx := &testFixtures{
		Make:         models.Make{Name: "Ford"},
		Make2:        models.Make{Name: "Audi"},
		Color:        models.Color{Name: "Blue"},
		Transmission: models.Transmission{Type: "Automatic"},
		Condition:    models.Condition{Type: "Used"},
		FuelType:     models.FuelType{Type: "Gasoline"},
		DriveType:    models.DriveType{Type: "AWD"},
		CarType:      models.CarType{Type: "Sedan"},
		Status:       models.Status{Name: "New"},
		Feature:      models.Feature{Name: "Sunroof"},
		Safety:       models.SafetyFeature{Name: "ABS"},
	}
	require.NoError(t, db.Create(&fx.Make).Error)
	require.NoError(t, db.Create(&fx.Make2).Error)

	fx.Model = models.ModelName{Name: "Mustang", MakeID: fx.Make.ID}
	fx.Model2 = models.ModelName{Name: "A4", MakeID: fx.Make2.ID}
	require.NoError(t, db.Create(&fx.Model).Error)
	require.NoError(t, db.Create(&fx.Model2).Error)

	require.NoError(t, db.Create(&fx.Color).Error)
	require.NoError(t, db.Create(&fx.Transmission).Error)
	require.NoError(t, db.Create(&fx.Condition).Error)
	require.NoError(t, db.Create(&fx.FuelType).Error)
	require.NoError(t, db.Create(&fx.DriveType).Error)
	require.NoError(t, db.Create(&fx.CarType).Error)
	require.NoError(t, db.Create(&fx.Status).Error)
	require.NoError(t, db.Create(&fx.Feature).Error)
	require.NoError(t, db.Create(&fx.Safety).Error)
	return fx
}

var testVINCounter int

func createTestListing(t *testing.T, db *gorm.DB, fx *testFixtures, overrides ...func(*models.CarsListing)) models.CarsListing {
	t.Helper()
	testVINCounter++
	listing := models.CarsListing{
		Title:          "Test Listing",
		Description:    "A test car",
		MakeID:         fx.Make.ID,
		ModelID:        fx.Model.ID,
		ColorID:        fx.Color.ID,
		TransmissionID: fx.Transmission.ID,
		ConditionID:    fx.Condition.ID,
		FuelTypeID:     fx.FuelType.ID,
		DriveTypeID:    fx.DriveType.ID,
		CarTypeID:      fx.CarType.ID,
		Year:           2020,
		Mileage:        30000,
		EngineSize:     2.0,
		Cylinders:      4,
		Doors:          4,
		VIN:            fmt.Sprintf("SRVTESTVIN%07d", testVINCounter),
		Price:          15000,
	}
	for _, o := range overrides {
		o(&listing)
	}
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doRequest(t, app, "POST", "/api/v1/admin/login", fiber.Map{
		"username": testAdminUser,
		"password": testAdminPassword,
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeJSON[map[string]any](t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoints(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := doRequest(t, app, "GET", "/health/live", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/health/ready", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, "healthy", body["status"])

	checks, ok := body["checks"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "unavailable", checks["redis"])
}

func TestAdminLogin(t *testing.T) {
	_, app, _ := newTestServer(t)

	t.Run("valid credentials", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/v1/admin/login", fiber.Map{
			"username": testAdminUser,
			"password": testAdminPassword,
		}, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeJSON[map[string]any](t, resp)
		assert.NotEmpty(t, body["token"])
		assert.EqualValues(t, 86400, body["expires_in"])
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/v1/admin/login", fiber.Map{
			"username": testAdminUser,
			"password": "nope",
		}, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/v1/admin/login", fiber.Map{
			"username": testAdminUser,
		}, "")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	_, app, _ := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/admin/catalog"},
		{"POST", "/api/v1/admin/listings"},
		{"GET", "/api/v1/admin/inquiries"},
		{"GET", "/api/v1/admin/feature-flags"},
	}
	for _, p := range paths {
		resp := doRequest(t, app, p.method, p.path, nil, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", p.method, p.path)
	}
}

func TestFeatureFlagsEndpoint(t *testing.T) {
	_, app, _ := newTestServer(t, func(c *config.Config) {
		c.FeatureFlags = "inquiries=off,new_search=25%"
	})
	token := loginAdmin(t, app)

	resp := doRequest(t, app, "GET", "/api/v1/admin/feature-flags", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON[map[string]any](t, resp)
	flags, ok := body["flags"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "off", flags["inquiries"])
	assert.Equal(t, "25%", flags["new_search"])

	evaluated, ok := body["evaluated"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, evaluated["inquiries"])
}
