package rayid_test

import (
	"net/http/httptest"
	"testing"

	"price-manager/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayID(t *testing.T) {
	app := fiber.New()
	app.Use(rayid.New())
	app.Get("/ping", func(c *fiber.Ctx) error {
		rid, _ := c.Locals(rayid.LocalsKey).(string)
		return c.SendString(rid)
	})

	t.Run("GeneratesID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		header := resp.Header.Get(rayid.HeaderName)
		assert.NotEmpty(t, header)
	})

	t.Run("ReusesClientID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(rayid.HeaderName, "trace-abc")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, "trace-abc", resp.Header.Get(rayid.HeaderName))
	})
}
