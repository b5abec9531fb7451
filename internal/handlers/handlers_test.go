// handlers_test.go
//
// A Star Wars favorites REST service backed by GORM
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of starwars-api.
// starwars-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// starwars-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with starwars-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/starwars-api/internal/database"
	"github.com/localnerve/starwars-api/internal/handlers"
	"github.com/localnerve/starwars-api/internal/metrics"
	"github.com/localnerve/starwars-api/internal/models"
	"github.com/localnerve/starwars-api/internal/server"
	"github.com/localnerve/starwars-api/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	metrics *metrics.Metrics
}

// setupApp mounts the API routes on a bare fiber app backed by an in-memory SQLite database
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	log := logrus.New()
	log.SetOutput(io.Discard)

	m := metrics.New()
	app := fiber.New(fiber.Config{ErrorHandler: server.ErrorHandler(log)})
	server.Routes(app, &handlers.Handler{DB: db, Metrics: m, Log: log, BcryptCost: bcrypt.MinCost})

	return &testEnv{app: app, db: db, metrics: m}
}

func (e *testEnv) do(t *testing.T, method, target string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp := testutil.Do(t, e.app, method, target, body)
	return resp, testutil.JSONMap(t, resp)
}

// id extracts a numeric id from a decoded JSON object
func id(t *testing.T, obj interface{}) int {
	t.Helper()
	m, ok := obj.(map[string]interface{})
	require.True(t, ok, "expected JSON object, got %T", obj)
	v, ok := m["id"].(float64)
	require.True(t, ok, "expected numeric id in %v", m)
	return int(v)
}

func TestCreateAndGetUser(t *testing.T) {
	env := setupApp(t)

	resp, body := env.do(t, "POST", "/users", map[string]interface{}{"username": "ana"})
	testutil.AssertStatus(t, resp, http.StatusCreated)
	assert.Equal(t, "User created successfully", body["message"])
	assert.Equal(t, 1, id(t, body["user"]))

	resp, body = env.do(t, "GET", "/users/1", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, "ana", body["username"])
	assert.Equal(t, true, body["is_active"])
	assert.NotContains(t, body, "password")

	assert.Equal(t, 1.0, promtest.ToFloat64(env.metrics.RecordsCreated.WithLabelValues("user")))
}

func TestCreateInactiveUser(t *testing.T) {
	env := setupApp(t)

	resp, body := env.do(t, "POST", "/users", map[string]interface{}{"username": "vader", "is_active": false})
	testutil.AssertStatus(t, resp, http.StatusCreated)
	assert.Equal(t, false, body["user"].(map[string]interface{})["is_active"])

	resp, body = env.do(t, "GET", "/users/1", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, false, body["is_active"])
}

func TestUserNotFound(t *testing.T) {
	env := setupApp(t)

	for _, method := range []string{"GET", "DELETE"} {
		resp, body := env.do(t, method, "/users/42", nil)
		testutil.AssertStatus(t, resp, http.StatusNotFound)
		assert.Equal(t, "User not found", body["message"])
		assert.Equal(t, false, body["ok"])
		assert.Equal(t, "/users/42", body["url"])
	}

	resp, _ := env.do(t, "PUT", "/users/42", map[string]interface{}{"name": "Ghost"})
	testutil.AssertStatus(t, resp, http.StatusNotFound)

	assert.Equal(t, 3.0, promtest.ToFloat64(env.metrics.NotFound.WithLabelValues("user")))
}

func TestInvalidIDAndBody(t *testing.T) {
	env := setupApp(t)

	resp, body := env.do(t, "GET", "/users/abc", nil)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "Invalid id", body["message"])

	resp, _ = env.do(t, "GET", "/planets/0", nil)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)

	resp, body = env.do(t, "POST", "/users", nil)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "Invalid input", body["message"])

	resp, _ = env.do(t, "POST", "/planets", []int{1})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
}

func TestUpdateUserPartial(t *testing.T) {
	env := setupApp(t)

	env.do(t, "POST", "/users", map[string]interface{}{"username": "han", "email": "han@falcon.net"})

	resp, body := env.do(t, "PATCH", "/users/1", map[string]interface{}{"surname": "Solo", "inscription_date": "1977-05-25"})
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, "User updated successfully", body["message"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "han", user["username"])
	assert.Equal(t, "Solo", user["surname"])
	assert.Equal(t, "han@falcon.net", user["email"])

	assert.Equal(t, "1977-05-25", user["inscription_date"].(string)[:10])

	resp, body = env.do(t, "PATCH", "/users/1", map[string]interface{}{"inscription_date": ""})
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Nil(t, body["user"].(map[string]interface{})["inscription_date"])
	_, body = env.do(t, "GET", "/users/1", nil)
	assert.Nil(t, body["inscription_date"])
	assert.Equal(t, "Solo", body["surname"])

	env.do(t, "POST", "/users", map[string]interface{}{"username": "greedo"})
	resp, body = env.do(t, "PUT", "/users/2", map[string]interface{}{"email": "HAN@falcon.net"})
	testutil.AssertStatus(t, resp, http.StatusConflict)
	assert.Equal(t, "Email already registered", body["message"])
}

func TestDeleteUser(t *testing.T) {
	env := setupApp(t)
	env.do(t, "POST", "/users", map[string]interface{}{"username": "jabba"})

	resp, body := env.do(t, "DELETE", "/users/1", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, map[string]interface{}{"message": "User deleted successfully"}, body)

	resp, _ = env.do(t, "GET", "/users/1", nil)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	resp, _ = env.do(t, "DELETE", "/users/1", nil)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
}

func TestListUsersPaging(t *testing.T) {
	env := setupApp(t)
	for i := 0; i < 3; i++ {
		env.do(t, "POST", "/users", map[string]interface{}{"username": fmt.Sprintf("trooper-%d", i)})
	}

	resp, body := env.do(t, "GET", "/users", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Len(t, body["users"], 3)

	resp, body = env.do(t, "GET", "/users?page=2&limit=2", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	users := body["users"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, 3, id(t, users[0]))

	resp, _ = env.do(t, "GET", "/users?limit=1000", nil)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	resp, _ = env.do(t, "GET", "/users?page=zero", nil)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
}

func TestCatalogEndpoints(t *testing.T) {
	cases := []struct {
		path    string
		listKey string
		itemKey string
		label   string
		body    map[string]interface{}
	}{
		{"/planets", "planets", "planet", "Planet", map[string]interface{}{"name": "Hoth", "climate": "frozen"}},
		{"/characters", "characters", "character", "Character", map[string]interface{}{"name": "Yoda"}},
		{"/people", "people", "character", "Character", map[string]interface{}{"name": "Boba Fett"}},
		{"/vehicles", "vehicles", "vehicle", "Vehicle", map[string]interface{}{"name": "Snowspeeder"}},
		{"/addresses", "addresses", "address", "Address", map[string]interface{}{"name": "Echo Base"}},
	}

	for _, tc := range cases {
		t.Run(tc.listKey, func(t *testing.T) {
			env := setupApp(t)

			// Client supplied ids are ignored
			payload := map[string]interface{}{"id": 99}
			for k, v := range tc.body {
				payload[k] = v
			}
			resp, body := env.do(t, "POST", tc.path, payload)
			testutil.AssertStatus(t, resp, http.StatusCreated)
			assert.Equal(t, tc.label+" created successfully", body["message"])
			newID := id(t, body[tc.itemKey])
			assert.Equal(t, 1, newID)

			resp, body = env.do(t, "GET", tc.path, nil)
			testutil.AssertStatus(t, resp, http.StatusOK)
			assert.Len(t, body[tc.listKey], 1)

			resp, body = env.do(t, "GET", fmt.Sprintf("%s/%d", tc.path, newID), nil)
			testutil.AssertStatus(t, resp, http.StatusOK)
			assert.Equal(t, tc.body["name"], body["name"])

			resp, body = env.do(t, "DELETE", fmt.Sprintf("%s/%d", tc.path, newID), nil)
			testutil.AssertStatus(t, resp, http.StatusOK)
			assert.Equal(t, tc.label+" deleted successfully", body["message"])

			resp, body = env.do(t, "GET", fmt.Sprintf("%s/%d", tc.path, newID), nil)
			testutil.AssertStatus(t, resp, http.StatusNotFound)
			assert.Equal(t, tc.label+" not found", body["message"])

			resp, body = env.do(t, "POST", tc.path, map[string]interface{}{"climate": "none"})
			testutil.AssertStatus(t, resp, http.StatusBadRequest)
			assert.Equal(t, tc.label+" name is required", body["message"])
		})
	}
}

func TestPeopleAliasSharesCharacters(t *testing.T) {
	env := setupApp(t)
	env.do(t, "POST", "/characters", map[string]interface{}{"name": "Wedge Antilles"})

	resp, body := env.do(t, "GET", "/people/1", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, "Wedge Antilles", body["name"])
}

func TestFavoriteListEndpoints(t *testing.T) {
	env := setupApp(t)
	env.do(t, "POST", "/users", map[string]interface{}{"username": "leia"})
	env.do(t, "POST", "/planets", map[string]interface{}{"name": "Alderaan"})
	env.do(t, "POST", "/vehicles", map[string]interface{}{"name": "Tantive IV"})

	resp, body := env.do(t, "POST", "/favorite-lists", map[string]interface{}{"user_id": "1", "planet_id": 1})
	testutil.AssertStatus(t, resp, http.StatusCreated)
	assert.Equal(t, "Favorite list created successfully", body["message"])
	favorite := body["favorite_list"].(map[string]interface{})
	assert.Equal(t, 1.0, favorite["user_id"])
	assert.Equal(t, 1.0, favorite["planet_id"])
	assert.Nil(t, favorite["vehicle_id"])

	// Duplicates create separate rows
	resp, body = env.do(t, "POST", "/favorite-lists", []map[string]interface{}{
		{"user_id": 1, "planet_id": 1},
		{"user_id": 1, "vehicle_id": "1"},
	})
	testutil.AssertStatus(t, resp, http.StatusCreated)
	assert.Len(t, body["favorite_lists"], 2)

	resp, body = env.do(t, "GET", "/favorite-lists", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Len(t, body["favorite_lists"], 3)

	resp, body = env.do(t, "GET", "/favorite-lists/2", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, 2, id(t, body))

	resp, body = env.do(t, "DELETE", "/favorite-lists/2", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, "Favorite list deleted successfully", body["message"])

	resp, body = env.do(t, "GET", "/favorite-lists/2", nil)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "Favorite list not found", body["message"])

	assert.Equal(t, 2.0, promtest.ToFloat64(env.metrics.FavoritesCreated.WithLabelValues("planet")))
	assert.Equal(t, 1.0, promtest.ToFloat64(env.metrics.FavoritesCreated.WithLabelValues("vehicle")))
}

func TestFavoriteListValidation(t *testing.T) {
	env := setupApp(t)
	env.do(t, "POST", "/users", map[string]interface{}{"username": "wicket"})

	resp, body := env.do(t, "POST", "/favorite-lists", map[string]interface{}{"user_id": 7, "planet_id": 1})
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "User not found", body["message"])

	resp, body = env.do(t, "POST", "/favorite-lists", map[string]interface{}{"user_id": 1, "planet_id": 1})
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "Planet not found", body["message"])

	resp, _ = env.do(t, "POST", "/favorite-lists", map[string]interface{}{"user_id": 1})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)

	resp, _ = env.do(t, "POST", "/favorite-lists", map[string]interface{}{"user_id": "endor", "planet_id": 1})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)

	resp, _ = env.do(t, "POST", "/favorite-lists", []interface{}{})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
}

func TestFavoriteShortcuts(t *testing.T) {
	env := setupApp(t)
	env.do(t, "POST", "/users", map[string]interface{}{"username": "lando"})
	env.do(t, "POST", "/planets", map[string]interface{}{"name": "Bespin"})
	env.do(t, "POST", "/characters", map[string]interface{}{"name": "Lobot"})

	resp, body := env.do(t, "POST", "/favorite/planet/1?user_id=1", nil)
	testutil.AssertStatus(t, resp, http.StatusCreated)
	assert.Equal(t, 1.0, body["favorite_list"].(map[string]interface{})["planet_id"])

	resp, body = env.do(t, "POST", "/favorite/people/1?user_id=1", nil)
	testutil.AssertStatus(t, resp, http.StatusCreated)
	assert.Equal(t, 1.0, body["favorite_list"].(map[string]interface{})["character_id"])

	resp, body = env.do(t, "POST", "/favorite/vehicle/1?user_id=1", nil)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "Vehicle not found", body["message"])

	resp, _ = env.do(t, "POST", "/favorite/starship/1?user_id=1", nil)
	testutil.AssertStatus(t, resp, http.StatusNotFound)

	resp, body = env.do(t, "POST", "/favorite/planet/1", nil)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "user_id query parameter is required", body["message"])

	resp, body = env.do(t, "GET", "/users/favorites?user_id=1", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, 1.0, body["user_id"])
	assert.Len(t, body["favorites"], 2)
	assert.Len(t, body["planets"], 1)
	assert.Len(t, body["characters"], 1)

	resp, body = env.do(t, "DELETE", "/favorite/planet/1?user_id=1", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, "Favorite deleted successfully", body["message"])
	assert.Equal(t, 1.0, body["deleted"])

	resp, body = env.do(t, "DELETE", "/favorite/planet/1?user_id=1", nil)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "Favorite not found", body["message"])

	resp, _ = env.do(t, "GET", "/users/favorites?user_id=9", nil)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	resp, _ = env.do(t, "GET", "/users/favorites", nil)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
}

func TestDeleteUserRemovesFavorites(t *testing.T) {
	env := setupApp(t)
	env.do(t, "POST", "/users", map[string]interface{}{"username": "biggs"})
	env.do(t, "POST", "/vehicles", map[string]interface{}{"name": "X-wing"})
	env.do(t, "POST", "/favorite/vehicle/1?user_id=1", nil)

	resp, _ := env.do(t, "DELETE", "/users/1", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var count int64
	require.NoError(t, env.db.Model(&models.FavoriteList{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSitemap(t *testing.T) {
	env := setupApp(t)

	resp, body := env.do(t, "GET", "/", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)

	endpoints := body["endpoints"].([]interface{})
	found := map[string]bool{}
	for _, ep := range endpoints {
		m := ep.(map[string]interface{})
		found[m["method"].(string)+" "+m["path"].(string)] = true
	}
	assert.True(t, found["GET /users"])
	assert.True(t, found["POST /favorite-lists"])
	assert.True(t, found["DELETE /favorite/:kind/:id"])
	assert.True(t, found["PATCH /users/:id"])
	assert.False(t, found["HEAD /users"])
}
