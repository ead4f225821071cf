package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/testutil"
)

const secret = "test-secret"

func signedToken(t *testing.T, sub, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newAdminApp(t *testing.T, cfg *config.Config) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/admin", JWTProtected(cfg), AdminRequired(db, cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, db
}

func do(t *testing.T, app *fiber.App, token, adminToken string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/admin", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if adminToken != "" {
		req.Header.Set("X-Admin-Token", adminToken)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestJWTProtected(t *testing.T) {
	app, _ := newAdminApp(t, &config.Config{JWTSecret: secret, AdminEmails: "boss@example.com"})

	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "", ""))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "garbage", ""))

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": uuid.NewString()})
	forged, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, forged, ""))
}

func TestAdminRequired(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:   secret,
		AdminEmails: "boss@example.com, ops@example.com",
		AdminToken:  "let-me-in",
	}
	app, db := newAdminApp(t, cfg)

	user := models.User{Email: "user@example.com", Password: "x", Role: "user"}
	admin := models.User{Email: "admin@example.com", Password: "x", Role: "admin"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&admin).Error)

	assert.Equal(t, fiber.StatusForbidden, do(t, app, signedToken(t, user.ID.String(), user.Email), ""))
	assert.Equal(t, fiber.StatusOK, do(t, app, signedToken(t, user.ID.String(), user.Email), "let-me-in"))
	assert.Equal(t, fiber.StatusOK, do(t, app, signedToken(t, uuid.NewString(), "ops@example.com"), ""))
	assert.Equal(t, fiber.StatusOK, do(t, app, signedToken(t, admin.ID.String(), admin.Email), ""))
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}
