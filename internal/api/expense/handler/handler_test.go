package expenseHandler_test

import (
	"ExpenseLedger/database/testdb"
	"ExpenseLedger/internal/config"
	jwtPkg "ExpenseLedger/pkg/jwt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	t.Setenv(jwtPkg.AccessTokenSecretEnv, "handler-test-secret")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "1000")

	log := logrus.New()
	log.SetOutput(io.Discard)

	server, err := config.NewServer(
		config.WithFiber(config.NewFiber(log)),
		config.WithLogger(log),
		config.WithValidator(config.NewValidator()),
		config.WithDB(testdb.NewSQLite(t)),
		config.WithMiddleware(),
		config.WithUtils(),
	)
	require.NoError(t, err)
	server.RegisterHandler()

	return &apiClient{t: t, app: server.App()}
}

func (a *apiClient) token(userID string) string {
	a.t.Helper()
	token, _, err := jwtPkg.Sign(map[string]interface{}{
		"id":       userID,
		"email":    userID + "@example.com",
		"username": userID,
	}, time.Hour)
	require.NoError(a.t, err)
	return token
}

func (a *apiClient) do(method, path, userID, body string) (int, string) {
	a.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+a.token(userID))
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, string(raw)
}

func (a *apiClient) decode(raw string) map[string]interface{} {
	a.t.Helper()
	var out map[string]interface{}
	require.NoError(a.t, json.Unmarshal([]byte(raw), &out), raw)
	return out
}

func (a *apiClient) create(userID, body string) map[string]interface{} {
	a.t.Helper()
	status, raw := a.do("POST", "/api/v1/expenses", userID, body)
	require.Equal(a.t, fiber.StatusCreated, status, raw)
	return a.decode(raw)
}

func TestHealthCheck(t *testing.T) {
	api := newAPI(t)

	status, raw := api.do("GET", "/", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, raw, "Healthy")
}

func TestExpenseRoutesRequireToken(t *testing.T) {
	api := newAPI(t)

	for _, path := range []string{"/api/v1/expenses", "/api/v1/expenses/summary", "/api/v1/expenses/categories", "/api/v1/expenses/abc"} {
		status, _ := api.do("GET", path, "", "")
		assert.Equal(t, fiber.StatusUnauthorized, status, path)
	}
}

func TestPredefinedCategoriesArePublic(t *testing.T) {
	api := newAPI(t)

	status, raw := api.do("GET", "/api/v1/categories/predefined", "", "")
	require.Equal(t, fiber.StatusOK, status)

	var categories []map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &categories))
	require.Len(t, categories, 8)
	assert.Equal(t, map[string]string{"id": "cat001", "name": "Food", "icon": "restaurant", "color": "orange"}, categories[0])
}

func TestCreateExpense(t *testing.T) {
	api := newAPI(t)
	today := time.Now().UTC().Format("2006-01-02")

	status, raw := api.do("POST", "/api/v1/expenses", "u1", `{"category":"Food","description":"Lunch","amount":12.5}`)
	require.Equal(t, fiber.StatusCreated, status, raw)
	assert.Contains(t, raw, `"amount":12.50`)

	body := api.decode(raw)
	assert.Equal(t, "Food", body["category"])
	assert.Equal(t, "Lunch", body["description"])
	assert.Equal(t, "u1", body["user_id"])
	assert.Equal(t, today, body["date"])
	assert.Nil(t, body["latitude"])
	for _, key := range []string{"id", "created_at", "updated_at"} {
		assert.NotEmpty(t, body[key], key)
	}

	created := api.create("u1", `{"category":"Food","description":"Dinner","amount":"8","date":"31/01/2024"}`)
	assert.Equal(t, "2024-01-31", created["date"])
}

func TestCreateExpenseValidation(t *testing.T) {
	api := newAPI(t)

	tests := []struct {
		name string
		body string
	}{
		{"zero amount", `{"category":"Food","description":"Lunch","amount":0}`},
		{"amount rounds to zero", `{"category":"Food","description":"Lunch","amount":0.001}`},
		{"missing description", `{"category":"Food","amount":3}`},
		{"blank category", `{"category":"   ","description":"Lunch","amount":3}`},
		{"bad date", `{"category":"Food","description":"Lunch","amount":3,"date":"2024-02-30"}`},
		{"latitude out of range", `{"category":"Food","description":"Lunch","amount":3,"latitude":91}`},
		{"amount overflows column", `{"category":"Food","description":"Lunch","amount":99999999999999}`},
		{"malformed json", `{"category":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := api.do("POST", "/api/v1/expenses", "u1", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status, raw)
			assert.Contains(t, raw, "VALIDATION_ERROR")
		})
	}

	status, raw := api.do("GET", "/api/v1/expenses", "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), api.decode(raw)["count"])
}

func TestGetUpdateDeleteLifecycle(t *testing.T) {
	api := newAPI(t)

	created := api.create("u1", `{"category":"Food","description":"Lunch","amount":12.5,"date":"2024-01-05","latitude":1.5,"longitude":2.5}`)
	path := "/api/v1/expenses/" + created["id"].(string)

	status, raw := api.do("GET", path, "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, created, api.decode(raw))

	status, raw = api.do("GET", path, "u2", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, raw, "NOT_FOUND")

	status, raw = api.do("PATCH", path, "u1", `{"description":"Team lunch","latitude":null}`)
	require.Equal(t, fiber.StatusOK, status, raw)
	updated := api.decode(raw)
	assert.Equal(t, "Team lunch", updated["description"])
	assert.Equal(t, 12.5, updated["amount"])
	assert.Equal(t, "2024-01-05", updated["date"])
	assert.Equal(t, "Food", updated["category"])
	assert.Nil(t, updated["latitude"])
	assert.Equal(t, 2.5, updated["longitude"])

	status, _ = api.do("PUT", path, "u1", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = api.do("PUT", path, "u1", `{"date":"not a date at all"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	long := `{"description":"` + strings.Repeat("x", 600) + `","category":"` + strings.Repeat("c", 150) + `"}`
	status, raw = api.do("PATCH", path, "u1", long)
	assert.Equal(t, fiber.StatusBadRequest, status, raw)
	assert.Contains(t, raw, "VALIDATION_ERROR")

	status, raw = api.do("PATCH", path, "u1", `{"amount":99999999999999}`)
	assert.Equal(t, fiber.StatusBadRequest, status, raw)

	status, raw = api.do("GET", path, "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Team lunch", api.decode(raw)["description"])

	status, _ = api.do("DELETE", path, "u2", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = api.do("DELETE", path, "u1", "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = api.do("DELETE", path, "u1", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestListExpensesWithFilters(t *testing.T) {
	api := newAPI(t)

	api.create("u1", `{"category":"Food","description":"Lunch at cafe","amount":10,"date":"2024-01-10"}`)
	api.create("u1", `{"category":"Transport","description":"Bus","amount":2,"date":"2024-01-12"}`)
	api.create("u1", `{"category":"Food","description":"Dinner","amount":30,"date":"2024-01-11"}`)
	api.create("u2", `{"category":"Food","description":"Lunch elsewhere","amount":5}`)

	status, raw := api.do("GET", "/api/v1/expenses", "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	body := api.decode(raw)
	assert.Equal(t, float64(3), body["count"])
	expenses := body["expenses"].([]interface{})
	assert.Equal(t, "2024-01-12", expenses[0].(map[string]interface{})["date"])
	assert.Equal(t, "2024-01-10", expenses[2].(map[string]interface{})["date"])

	status, raw = api.do("GET", "/api/v1/expenses?category=Food", "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(2), api.decode(raw)["count"])

	status, raw = api.do("GET", "/api/v1/expenses?search=LUNCH", "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), api.decode(raw)["count"])

	status, raw = api.do("GET", "/api/v1/expenses/categories", "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"count":2,"categories":["Food","Transport"]}`, raw)
}

func TestSummary(t *testing.T) {
	api := newAPI(t)

	status, raw := api.do("GET", "/api/v1/expenses/summary", "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	empty := api.decode(raw)
	assert.Equal(t, float64(0), empty["total_amount"])
	assert.Equal(t, float64(0), empty["count"])
	assert.Equal(t, []interface{}{}, empty["recent_expenses"])
	assert.Len(t, empty["amount_by_category"], 8)
	assert.Contains(t, raw, `"total_amount":0.00`)

	api.create("u1", `{"category":"Food","description":"a","amount":0.1,"date":"2024-01-01"}`)
	api.create("u1", `{"category":"Food","description":"b","amount":0.2,"date":"2024-01-02"}`)
	api.create("u1", `{"category":"Pets","description":"c","amount":11,"date":"2024-01-03"}`)

	status, raw = api.do("GET", "/api/v1/expenses/summary", "u1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, raw, `"total_amount":11.30`)

	summary := api.decode(raw)
	assert.Equal(t, float64(3), summary["count"])
	byCategory := summary["amount_by_category"].(map[string]interface{})
	assert.Equal(t, 0.3, byCategory["Food"])
	assert.Equal(t, float64(11), byCategory["Pets"])
	assert.Len(t, byCategory, 9)
	assert.Contains(t, raw, `"amount_by_category":{"Food":0.30,"Transport":0.00,`)
	assert.Less(t, strings.Index(raw, `"Other":0.00`), strings.Index(raw, `"Pets":11.00`))
	recent := summary["recent_expenses"].([]interface{})
	require.Len(t, recent, 3)
	assert.Equal(t, "c", recent[0].(map[string]interface{})["description"])
}
