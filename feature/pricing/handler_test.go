package pricing

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"price-manager/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, runner Runner) (*fiber.App, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	svc := NewService(runner, NewStore(db), zap.NewNop(), "http://feed.example/products.xml")
	h := NewHandler(svc)

	app := fiber.New()
	h.RegisterRoutes(app)
	return app, mock
}

func TestHandleReconcile_Success(t *testing.T) {
	runner := &fakeRunner{summary: reconcile.Summary{
		Success: true,
		Stats:   reconcile.Stats{MatchedByCode: 2, Updated: 2},
	}}
	app, _ := setupApp(t, runner)

	req := httptest.NewRequest("POST", "/pricing/reconcile", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary reconcile.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.True(t, summary.Success)
	assert.Equal(t, 2, summary.Stats.Updated)
}

func TestHandleReconcile_PartialFailureIsStillOK(t *testing.T) {
	runner := &fakeRunner{summary: reconcile.Summary{
		Success:     true,
		Stats:       reconcile.Stats{Updated: 150},
		ChunkErrors: []reconcile.ChunkError{{Index: 100, Message: "upsert rejected"}},
	}}
	app, _ := setupApp(t, runner)

	req := httptest.NewRequest("POST", "/pricing/reconcile", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary reconcile.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	require.Len(t, summary.ChunkErrors, 1)
	assert.Equal(t, 100, summary.ChunkErrors[0].Index)
}

func TestHandleReconcile_FatalFailure(t *testing.T) {
	runner := &fakeRunner{summary: reconcile.Summary{
		Success: false,
		Error:   `unrecognized feed structure: root element "unexpected"`,
	}}
	app, _ := setupApp(t, runner)

	req := httptest.NewRequest("POST", "/pricing/reconcile", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var summary reconcile.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.False(t, summary.Success)
	assert.Contains(t, summary.Error, "unexpected")
}

func TestHandleHistory(t *testing.T) {
	runner := &fakeRunner{}
	app, mock := setupApp(t, runner)

	rows := sqlmock.NewRows([]string{"id", "product_id", "price", "source", "created_at"}).
		AddRow("h1", "p1", "4990.00", "xml", time.Now())
	mock.ExpectQuery("SELECT \\* FROM `price_history`").WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/pricing/history/p1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHandleHistory_StoreError(t *testing.T) {
	runner := &fakeRunner{}
	app, mock := setupApp(t, runner)

	mock.ExpectQuery("SELECT \\* FROM `price_history`").WillReturnError(assert.AnError)

	req := httptest.NewRequest("GET", "/pricing/history/p1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
