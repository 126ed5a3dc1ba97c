package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/postline/postline/internal/cache"
	"github.com/postline/postline/internal/db"
	"github.com/postline/postline/internal/feed"
	"github.com/postline/postline/internal/social"
	"github.com/postline/postline/pkg/config"
	"github.com/postline/postline/pkg/logging"
)

// Router wires the HTTP surface to the feed and social services
type Router struct {
	database *db.DB
	users    *db.UserRepository
	feeds    *feed.Service
	posts    *social.PostService
	comments *social.CommentService
	follows  *social.FollowService
	store    cache.Store
	pageSize int
	logger   *zap.Logger
}

// NewRouter creates a new API router. store caches the rendered global
// feed; pass nil to disable response caching.
func NewRouter(database *db.DB, store cache.Store, cfg *config.Config) *Router {
	repo := db.NewRepository(database.DB)
	return &Router{
		database: database,
		users:    db.NewUserRepository(repo),
		feeds:    feed.NewService(repo),
		posts:    social.NewPostService(repo),
		comments: social.NewCommentService(repo),
		follows:  social.NewFollowService(repo),
		store:    store,
		pageSize: cfg.Feed.PageSize,
		logger:   logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(r.identity())

	// Health and metrics
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Feeds
	engine.GET("/", r.index)
	engine.GET("/group/:slug", r.groupFeed)
	engine.GET("/follow", requireAuth(), r.followFeed)

	// Authoring
	engine.POST("/new", requireAuth(), r.newPost)

	// Profile and post views
	engine.GET("/:username", r.profile)
	engine.GET("/:username/:post_id", r.postDetail)
	engine.POST("/:username/:post_id/edit", requireAuth(), r.editPost)
	engine.POST("/:username/:post_id/comment", requireAuth(), r.addComment)

	// Follow graph
	engine.POST("/:username/follow", requireAuth(), r.follow)
	engine.POST("/:username/unfollow", requireAuth(), r.unfollow)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "path": c.Request.URL.Path})
	})
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "postline-api",
	})
}
