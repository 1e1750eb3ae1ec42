package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogly/internal/config"
	"blogly/internal/database"
	"blogly/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp wires a full server against an in-memory sqlite database so
// handler tests exercise the real service and repository layers.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every statement on the same in-memory
	// database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	s := NewServer(&config.Config{Port: "0"}, db)
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
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
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createUserViaAPI(t *testing.T, app *fiber.App, first, last string) models.User {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"first_name": first,
		"last_name":  last,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[models.User](t, resp)
}

func createTagViaAPI(t *testing.T, app *fiber.App, name string) models.Tag {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/tags", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[models.Tag](t, resp)
}

func createPostViaAPI(t *testing.T, app *fiber.App, userID uint, title string, tagIDs []uint) models.Post {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/posts", userID), map[string]any{
		"title":   title,
		"content": "content of " + title,
		"tag_ids": tagIDs,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[models.Post](t, resp)
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}

func TestUserCRUDFlow(t *testing.T) {
	app := setupTestApp(t)

	user := createUserViaAPI(t, app, "Leslie", "Knope")
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.DefaultImgURL, user.ImgURL)

	resp := doJSON(t, app, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decodeBody[[]models.User](t, resp)
	require.Len(t, users, 1)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]string{
		"first_name": "Ann",
		"last_name":  "Perkins",
		"img_url":    "https://example.com/ann.png",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[models.User](t, resp)
	assert.Equal(t, "Ann", updated.FirstName)
	assert.Equal(t, "https://example.com/ann.png", updated.ImgURL)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestCreateUser_MissingFields(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{"first_name": "Leslie"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestUserList_Ordering(t *testing.T) {
	app := setupTestApp(t)

	createUserViaAPI(t, app, "Doug", "Hooker")
	createUserViaAPI(t, app, "Leslie", "Knope")
	createUserViaAPI(t, app, "Bill", "Billiams")

	resp := doJSON(t, app, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decodeBody[[]models.User](t, resp)
	require.Len(t, users, 3)
	// Last name descending.
	assert.Equal(t, "Knope", users[0].LastName)
	assert.Equal(t, "Hooker", users[1].LastName)
	assert.Equal(t, "Billiams", users[2].LastName)
}

func TestPostFlow_TagReplacement(t *testing.T) {
	app := setupTestApp(t)

	user := createUserViaAPI(t, app, "Leslie", "Knope")
	cool := createTagViaAPI(t, app, "cool")
	fun := createTagViaAPI(t, app, "fun")
	boring := createTagViaAPI(t, app, "boring")

	post := createPostViaAPI(t, app, user.ID, "first post", []uint{cool.ID, fun.ID})
	assert.ElementsMatch(t, []string{"cool", "fun"}, tagNames(post.Tags))

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%d", post.ID), map[string]any{
		"title":   "first post, edited",
		"content": "new content",
		"tag_ids": []uint{fun.ID, boring.ID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[models.Post](t, resp)
	assert.Equal(t, "first post, edited", updated.Title)
	assert.ElementsMatch(t, []string{"fun", "boring"}, tagNames(updated.Tags))

	// Clearing the tag set entirely.
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%d", post.ID), map[string]any{
		"title":   "first post, edited",
		"content": "new content",
		"tag_ids": []uint{},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := decodeBody[models.Post](t, resp)
	assert.Empty(t, cleared.Tags)
}

func TestCreatePost_UnknownTagID(t *testing.T) {
	app := setupTestApp(t)

	user := createUserViaAPI(t, app, "Leslie", "Knope")
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/posts", user.ID), map[string]any{
		"title":   "post",
		"content": "body",
		"tag_ids": []uint{999},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestCreatePost_MissingFields(t *testing.T) {
	app := setupTestApp(t)

	user := createUserViaAPI(t, app, "Leslie", "Knope")
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/posts", user.ID), map[string]any{
		"title": "no content",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestDeleteUser_CascadesToPosts(t *testing.T) {
	app := setupTestApp(t)

	user := createUserViaAPI(t, app, "Leslie", "Knope")
	tag := createTagViaAPI(t, app, "cool")
	post := createPostViaAPI(t, app, user.ID, "doomed post", []uint{tag.ID})

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	// The tag itself survives.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/tags/%d", tag.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetUserPosts(t *testing.T) {
	app := setupTestApp(t)

	alice := createUserViaAPI(t, app, "Leslie", "Knope")
	bob := createUserViaAPI(t, app, "Doug", "Hooker")
	createPostViaAPI(t, app, alice.ID, "alice one", nil)
	createPostViaAPI(t, app, alice.ID, "alice two", nil)
	createPostViaAPI(t, app, bob.ID, "bob one", nil)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/posts", alice.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	posts := decodeBody[[]models.Post](t, resp)
	assert.Len(t, posts, 2)

	resp = doJSON(t, app, http.MethodGet, "/api/users/999/posts", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRecentFeed(t *testing.T) {
	app := setupTestApp(t)

	user := createUserViaAPI(t, app, "Leslie", "Knope")
	for i := 1; i <= 7; i++ {
		createPostViaAPI(t, app, user.ID, fmt.Sprintf("post %d", i), nil)
	}

	resp := doJSON(t, app, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	feed := decodeBody[[]models.Post](t, resp)
	require.Len(t, feed, 5)
	assert.Equal(t, "post 7", feed[0].Title)
	assert.Equal(t, "post 3", feed[4].Title)
}

func TestTagUpdate_WithoutPostSet(t *testing.T) {
	app := setupTestApp(t)

	user := createUserViaAPI(t, app, "Leslie", "Knope")
	tag := createTagViaAPI(t, app, "cool")
	createPostViaAPI(t, app, user.ID, "tagged post", []uint{tag.ID})

	// Renaming without post_ids must not touch the association set.
	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/tags/%d", tag.ID), map[string]string{
		"name": "very cool",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	renamed := decodeBody[models.Tag](t, resp)
	assert.Equal(t, "very cool", renamed.Name)
	assert.Len(t, renamed.Posts, 1)

	// An explicit empty post set clears the associations.
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/tags/%d", tag.ID), map[string]any{
		"name":     "very cool",
		"post_ids": []uint{},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := decodeBody[models.Tag](t, resp)
	assert.Empty(t, cleared.Posts)
}

func TestListTags_SortByID(t *testing.T) {
	app := setupTestApp(t)

	createTagViaAPI(t, app, "cool")
	createTagViaAPI(t, app, "fun")
	createTagViaAPI(t, app, "boring")

	resp := doJSON(t, app, http.MethodGet, "/api/tags?sort=id", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tags := decodeBody[[]models.Tag](t, resp)
	require.Len(t, tags, 3)
	assert.True(t, tags[0].ID < tags[1].ID && tags[1].ID < tags[2].ID)
}

func TestInvalidIDParam(t *testing.T) {
	app := setupTestApp(t)

	for _, path := range []string{"/api/users/abc", "/api/posts/0", "/api/tags/-1"} {
		resp := doJSON(t, app, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		_ = resp.Body.Close()
	}
}

func TestHealth(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}
