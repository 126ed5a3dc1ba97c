package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/postline/postline/internal/cache"
	"github.com/postline/postline/internal/db"
	"github.com/postline/postline/internal/models"
	"github.com/postline/postline/pkg/config"
)

type testEnv struct {
	engine *gin.Engine
	gdb    *gorm.DB
	now    *time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	))

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	env := &testEnv{gdb: gdb, now: &now}

	store := cache.NewSlotWithClock(20*time.Second, func() time.Time { return *env.now })

	cfg := &config.Config{
		Feed: config.FeedConfig{PageSize: 10, CacheTTL: 20 * time.Second},
	}

	engine := gin.New()
	router := NewRouter(&db.DB{DB: gdb}, store, cfg)
	router.SetupRoutes(engine)
	env.engine = engine

	return env
}

func (e *testEnv) request(t *testing.T, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if user != "" {
		req.Header.Set(identityHeader, user)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username}
	require.NoError(t, e.gdb.Create(user).Error)
	return user
}

func (e *testEnv) createPost(t *testing.T, author *models.User, text string, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID, CreatedAt: at}
	require.NoError(t, e.gdb.Create(post).Error)
	return post
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OK")
}

func TestIndexCacheStaleness(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	env.createPost(t, alice, "visible post", env.now.Add(-time.Hour))

	// Prime the cache
	rec := env.request(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "visible post")

	// A post created inside the window stays invisible
	env.createPost(t, alice, "fresh post", env.now.Add(-time.Minute))

	*env.now = env.now.Add(5 * time.Second)
	rec = env.request(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "fresh post")

	// Past the window the response is recomputed
	*env.now = env.now.Add(20 * time.Second)
	rec = env.request(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fresh post")
}

func TestNotFoundResponses(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodGet, "/group/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodGet, "/no/such/path/here", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnauthenticatedWriteRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/new", "", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusFound, rec.Code)

	location := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/auth/login/?next="), "got %q", location)
	assert.Contains(t, location, "next=%2Fnew")
}

func TestCreatePostFlow(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	rec := env.request(t, http.MethodPost, "/new", "alice", map[string]string{"text": "my first post"})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var count int64
	require.NoError(t, env.gdb.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Empty text re-presents the form as a validation failure
	rec = env.request(t, http.MethodPost, "/new", "alice", map[string]string{"text": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProfileAndFollowingFlag(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.createPost(t, alice, "alice writes", *env.now)
	require.NoError(t, env.gdb.Create(&models.Follow{UserID: bob.ID, AuthorID: alice.ID}).Error)

	// Anonymous callers get no following flag
	rec := env.request(t, http.MethodGet, "/alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "following")

	rec = env.request(t, http.MethodGet, "/alice", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var bundle struct {
		Following bool `json:"following"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bundle))
	assert.True(t, bundle.Following)
}

func TestFollowAndFollowedFeed(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")
	env.createPost(t, alice, "from alice", *env.now)

	rec := env.request(t, http.MethodPost, "/alice/follow", "bob", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/alice", rec.Header().Get("Location"))

	rec = env.request(t, http.MethodGet, "/follow", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "from alice")

	rec = env.request(t, http.MethodPost, "/alice/unfollow", "bob", nil)
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = env.request(t, http.MethodGet, "/follow", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "from alice")
}

func TestEditByNonAuthorRedirectsToPost(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")
	post := env.createPost(t, alice, "original", *env.now)

	path := fmt.Sprintf("/alice/%d/edit", post.ID)
	rec := env.request(t, http.MethodPost, path, "bob", map[string]string{"text": "hijacked"})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("/alice/%d", post.ID), rec.Header().Get("Location"))

	var persisted models.Post
	require.NoError(t, env.gdb.First(&persisted, post.ID).Error)
	assert.Equal(t, "original", persisted.Text)
}

func TestAddCommentAttribution(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")
	post := env.createPost(t, alice, "commentable", *env.now)

	path := fmt.Sprintf("/alice/%d/comment", post.ID)
	rec := env.request(t, http.MethodPost, path, "bob", map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusFound, rec.Code)

	var comment models.Comment
	require.NoError(t, env.gdb.First(&comment).Error)
	assert.Equal(t, alice.ID, comment.AuthorID)

	// The post view lists the comment under the post author's name
	rec = env.request(t, http.MethodGet, fmt.Sprintf("/alice/%d", post.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hello")
}
