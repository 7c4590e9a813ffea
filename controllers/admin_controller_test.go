package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movekenya/movekenya_backend/models"
	"github.com/movekenya/movekenya_backend/utils"
)

// fakeDriverStore is an in-memory DriverStore keyed by id string.
type fakeDriverStore struct {
	drivers map[string]*models.Driver
	nextID  int
	err     error
}

func newFakeDriverStore() *fakeDriverStore {
	return &fakeDriverStore{drivers: make(map[string]*models.Driver), nextID: 1}
}

func (s *fakeDriverStore) Insert(ctx context.Context, driver *models.Driver) error {
	if s.err != nil {
		return s.err
	}
	id := string(rune('a' + s.nextID))
	s.nextID++
	s.drivers[id] = driver
	return nil
}

func (s *fakeDriverStore) List(ctx context.Context) ([]models.Driver, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []models.Driver{}
	for _, driver := range s.drivers {
		copied := *driver
		copied.Password = ""
		out = append(out, copied)
	}
	return out, nil
}

func (s *fakeDriverStore) UpdateStatus(ctx context.Context, id, status string) error {
	if s.err != nil {
		return s.err
	}
	if driver, ok := s.drivers[id]; ok {
		driver.Status = status
	}
	return nil
}

func (s *fakeDriverStore) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.drivers, id)
	return nil
}

type adminEnv struct {
	e       *echo.Echo
	ac      *AdminController
	drivers *fakeDriverStore
}

func newAdminEnv(t *testing.T) *adminEnv {
	t.Helper()

	drivers := newFakeDriverStore()
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	return &adminEnv{e: e, ac: NewAdminController(drivers), drivers: drivers}
}

func (env *adminEnv) request(handler echo.HandlerFunc, method, path, body, paramID string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	if err := handler(c); err != nil {
		env.e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAddDriver_ForcesInactiveStatus(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.request(env.ac.AddDriver, http.MethodPost, "/admin/add-driver",
		`{"full_name":"Dan Driver","email":"dan@x.com","phone":"5550001","password":"drvpw"}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Driver added successfully", rec.Body.String())

	require.Len(t, env.drivers.drivers, 1)
	for _, driver := range env.drivers.drivers {
		assert.Equal(t, models.DriverStatusInactive, driver.Status)
		assert.NoError(t, utils.CheckPassword("drvpw", driver.Password))
	}
}

func TestAddDriver_StoreFault(t *testing.T) {
	env := newAdminEnv(t)
	env.drivers.err = errors.New("connection reset")

	rec := env.request(env.ac.AddDriver, http.MethodPost, "/admin/add-driver",
		`{"full_name":"Dan Driver","email":"dan@x.com","password":"drvpw"}`, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to add driver", rec.Body.String())
}

func TestGetDrivers_ReturnsJSONArrayWithoutHashes(t *testing.T) {
	env := newAdminEnv(t)
	env.request(env.ac.AddDriver, http.MethodPost, "/admin/add-driver",
		`{"full_name":"Dan Driver","email":"dan@x.com","password":"drvpw"}`, "")

	rec := env.request(env.ac.GetDrivers, http.MethodGet, "/admin/drivers", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var drivers []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &drivers))
	require.Len(t, drivers, 1)
	assert.Equal(t, "dan@x.com", drivers[0]["email"])
	assert.NotContains(t, drivers[0], "password")
}

func TestGetDrivers_EmptyListIsEmptyArray(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.request(env.ac.GetDrivers, http.MethodGet, "/admin/drivers", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestUpdateDriverStatus_NoValueValidation(t *testing.T) {
	env := newAdminEnv(t)
	env.request(env.ac.AddDriver, http.MethodPost, "/admin/add-driver",
		`{"full_name":"Dan Driver","email":"dan@x.com","password":"drvpw"}`, "")

	// Any status string is applied verbatim
	rec := env.request(env.ac.UpdateDriverStatus, http.MethodPut, "/admin/driver-status/b",
		`{"status":"on-vacation"}`, "b")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Status updated", rec.Body.String())
	assert.Equal(t, "on-vacation", env.drivers.drivers["b"].Status)
}

func TestUpdateDriverStatus_MissingIDStillSucceeds(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.request(env.ac.UpdateDriverStatus, http.MethodPut, "/admin/driver-status/zzz",
		`{"status":"active"}`, "zzz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteDriver_MissingIDStillSucceeds(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.request(env.ac.DeleteDriver, http.MethodDelete, "/admin/driver/zzz", "", "zzz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Driver deleted", rec.Body.String())
}

func TestDeleteDriver_RemovesRow(t *testing.T) {
	env := newAdminEnv(t)
	env.request(env.ac.AddDriver, http.MethodPost, "/admin/add-driver",
		`{"full_name":"Dan Driver","email":"dan@x.com","password":"drvpw"}`, "")
	require.Len(t, env.drivers.drivers, 1)

	rec := env.request(env.ac.DeleteDriver, http.MethodDelete, "/admin/driver/b", "", "b")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.drivers.drivers)
}

func TestDriverRegistry_StoreFaults(t *testing.T) {
	env := newAdminEnv(t)
	env.drivers.err = errors.New("connection reset")

	rec := env.request(env.ac.GetDrivers, http.MethodGet, "/admin/drivers", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = env.request(env.ac.UpdateDriverStatus, http.MethodPut, "/admin/driver-status/b",
		`{"status":"active"}`, "b")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = env.request(env.ac.DeleteDriver, http.MethodDelete, "/admin/driver/b", "", "b")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
