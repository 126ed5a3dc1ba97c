package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/postline/postline/internal/cache"
	"github.com/postline/postline/internal/feed"
)

const jsonContentType = "application/json; charset=utf-8"

// index serves the global feed. The rendered response is memoized for the
// cache window: inside the window every caller gets the stored bytes
// verbatim, whatever happened to the data since.
func (r *Router) index(c *gin.Context) {
	pageNumber := feed.ParsePageNumber(c.Query("page"))

	var cacheKey string
	if r.store != nil {
		cacheKey = cache.HashKey("index", strconv.Itoa(pageNumber))
		if body, ok := r.store.Get(c.Request.Context(), cacheKey); ok {
			c.Data(http.StatusOK, jsonContentType, body)
			return
		}
	}

	page, err := r.feeds.Global(c.Request.Context(), r.pageSize, pageNumber)
	if err != nil {
		r.writeError(c, err)
		return
	}

	body, err := json.Marshal(gin.H{"page": page})
	if err != nil {
		r.writeError(c, err)
		return
	}

	if r.store != nil {
		r.store.Set(c.Request.Context(), cacheKey, body)
	}
	c.Data(http.StatusOK, jsonContentType, body)
}

// groupFeed serves the posts of one group
func (r *Router) groupFeed(c *gin.Context) {
	pageNumber := feed.ParsePageNumber(c.Query("page"))

	group, page, err := r.feeds.Group(c.Request.Context(), c.Param("slug"), r.pageSize, pageNumber)
	if err != nil {
		r.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group": group,
		"page":  page,
	})
}

// followFeed serves the posts of every author the caller follows
func (r *Router) followFeed(c *gin.Context) {
	pageNumber := feed.ParsePageNumber(c.Query("page"))

	page, err := r.feeds.Followed(c.Request.Context(), currentUser(c), r.pageSize, pageNumber)
	if err != nil {
		r.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// profile serves an author's posts plus, for authenticated callers, the
// following flag
func (r *Router) profile(c *gin.Context) {
	pageNumber := feed.ParsePageNumber(c.Query("page"))

	author, page, err := r.feeds.Author(c.Request.Context(), c.Param("username"), r.pageSize, pageNumber)
	if err != nil {
		r.writeError(c, err)
		return
	}

	bundle := gin.H{
		"author": author,
		"page":   page,
	}
	if caller := currentUser(c); caller != nil {
		following, err := r.follows.IsFollowing(c.Request.Context(), caller, author)
		if err != nil {
			r.writeError(c, err)
			return
		}
		bundle["following"] = following
	}

	c.JSON(http.StatusOK, bundle)
}

// postDetail serves a single post with its comments
func (r *Router) postDetail(c *gin.Context) {
	post, ok := r.resolvePost(c)
	if !ok {
		return
	}

	comments, err := r.comments.ListComments(c.Request.Context(), post)
	if err != nil {
		r.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"author":   post.Author,
		"comments": comments,
	})
}
