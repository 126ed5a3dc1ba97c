// Seed tool: populates a development database with users, groups, posts
// and follow edges so the feeds have something to serve.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/postline/postline/internal/db"
	"github.com/postline/postline/internal/models"
	"github.com/postline/postline/pkg/config"
	"github.com/postline/postline/pkg/logging"
)

func main() {
	var numUsers int
	var numGroups int
	var numPosts int
	flag.IntVar(&numUsers, "users", 20, "number of users")
	flag.IntVar(&numGroups, "groups", 5, "number of groups")
	flag.IntVar(&numPosts, "posts", 200, "number of posts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := logging.GetLogger()

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	repo := db.NewRepository(database.DB)
	users := db.NewUserRepository(repo)
	groups := db.NewGroupRepository(repo)
	posts := db.NewPostRepository(repo)
	follows := db.NewFollowRepository(repo)

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	faker := gofakeit.New(uint64(time.Now().UnixNano()))

	seededUsers := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := &models.User{
			Username:  fmt.Sprintf("%s%d", faker.Username(), i),
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
		}
		if err := users.Create(ctx, user); err != nil {
			logger.Fatal("Failed to create user", zap.Error(err))
		}
		seededUsers = append(seededUsers, user)
	}

	seededGroups := make([]*models.Group, 0, numGroups)
	for i := 0; i < numGroups; i++ {
		group := &models.Group{
			Title:       faker.BookTitle(),
			Slug:        fmt.Sprintf("%s-%d", faker.Word(), i),
			Description: faker.Sentence(8),
		}
		if err := groups.Create(ctx, group); err != nil {
			logger.Fatal("Failed to create group", zap.Error(err))
		}
		seededGroups = append(seededGroups, group)
	}

	for i := 0; i < numPosts; i++ {
		post := &models.Post{
			Text:     faker.Paragraph(1, 3, 12, " "),
			AuthorID: seededUsers[r.Intn(len(seededUsers))].ID,
		}
		// Roughly half the posts are filed under a group
		if len(seededGroups) > 0 && r.Intn(2) == 0 {
			post.GroupID = sql.NullInt64{
				Int64: seededGroups[r.Intn(len(seededGroups))].ID,
				Valid: true,
			}
		}
		if err := posts.Create(ctx, post); err != nil {
			logger.Fatal("Failed to create post", zap.Error(err))
		}
	}

	// Sparse random follow graph; self edges skipped, duplicates absorbed
	for _, follower := range seededUsers {
		for i := 0; i < 3; i++ {
			author := seededUsers[r.Intn(len(seededUsers))]
			if author.ID == follower.ID {
				continue
			}
			if err := follows.Create(ctx, &models.Follow{
				UserID:   follower.ID,
				AuthorID: author.ID,
			}); err != nil {
				logger.Fatal("Failed to create follow edge", zap.Error(err))
			}
		}
	}

	logger.Info("Seed complete",
		zap.Int("users", numUsers),
		zap.Int("groups", numGroups),
		zap.Int("posts", numPosts),
	)
}
