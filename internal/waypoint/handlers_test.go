package waypoint

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func stubAuth(userID, email string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("email", email)
		return c.Next()
	}
}

func TestWaypointHandlersCreateAndList(t *testing.T) {
	mock := newMock(t)

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO waypoints`).
		WithArgs(pgxmock.AnyArg(), "user-a", "Bayside Pier", 25.7617, -80.1918, "sunset spot", "a@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	mock.ExpectQuery(`SELECT id, user_id, name`).
		WillReturnRows(pgxmock.NewRows(waypointCols).
			AddRow("wp-1", "user-a", "Bayside Pier", 25.7617, -80.1918, "sunset spot", "a@example.com", 0, createdAt, (*time.Time)(nil)))

	app := fiber.New()
	RegisterRoutes(app.Group("/waypoints"), NewService(mock, nil), stubAuth("user-a", "a@example.com"))

	body, _ := json.Marshal(map[string]any{
		"name":        "Bayside Pier",
		"latitude":    25.7617,
		"longitude":   -80.1918,
		"description": "sunset spot",
	})
	req := httptest.NewRequest(http.MethodPost, "/waypoints/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v %d", err, resp.StatusCode)
	}

	var created Waypoint
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.OwnerID != "user-a" || created.CreatedBy != "a@example.com" {
		t.Fatalf("owner must come from the token, got %+v", created)
	}

	req = httptest.NewRequest(http.MethodGet, "/waypoints/", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}
	var listed []Waypoint
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil || len(listed) != 1 {
		t.Fatalf("decode list: %v", err)
	}
}

func TestWaypointHandlersBlankName(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/waypoints"), NewService(nil, nil), stubAuth("user-a", "a@example.com"))

	body := []byte(`{"name":"   ","latitude":1,"longitude":2}`)
	req := httptest.NewRequest(http.MethodPost, "/waypoints/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for blank name")
	}
}

func TestWaypointHandlersUpdateForbidden(t *testing.T) {
	mock := newMock(t)

	createdAt := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, name`).WithArgs("wp-1").
		WillReturnRows(pgxmock.NewRows(waypointCols).
			AddRow("wp-1", "user-a", "WP", 1.0, 2.0, "", "a@example.com", 0, createdAt, (*time.Time)(nil)))

	app := fiber.New()
	RegisterRoutes(app.Group("/waypoints"), NewService(mock, nil), stubAuth("user-b", "b@example.com"))

	body := []byte(`{"name":"x"}`)
	req := httptest.NewRequest(http.MethodPut, "/waypoints/wp-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected forbidden, got %v %d", err, resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Success || res.Message != msgForbiddenEdit {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestWaypointHandlersDeleteNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id, user_id, name`).WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	app := fiber.New()
	RegisterRoutes(app.Group("/waypoints"), NewService(mock, nil), stubAuth("user-a", "a@example.com"))

	req := httptest.NewRequest(http.MethodDelete, "/waypoints/missing", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %v %d", err, resp.StatusCode)
	}
}

func TestWaypointHandlersDeleteSuccess(t *testing.T) {
	mock := newMock(t)

	createdAt := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, name`).WithArgs("wp-1").
		WillReturnRows(pgxmock.NewRows(waypointCols).
			AddRow("wp-1", "user-a", "WP", 1.0, 2.0, "", "a@example.com", 0, createdAt, (*time.Time)(nil)))
	mock.ExpectExec(`DELETE FROM waypoints`).WithArgs("wp-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/waypoints"), NewService(mock, nil), stubAuth("user-a", "a@example.com"))

	req := httptest.NewRequest(http.MethodDelete, "/waypoints/wp-1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok, got %v %d", err, resp.StatusCode)
	}
}
