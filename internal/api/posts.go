package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/postline/postline/internal/apperr"
	"github.com/postline/postline/internal/models"
	"github.com/postline/postline/internal/social"
)

// postPath is the canonical read view for a post
func postPath(username string, postID int64) string {
	return "/" + username + "/" + strconv.FormatInt(postID, 10)
}

// resolvePost loads the post named by the route, or writes the error and
// reports false
func (r *Router) resolvePost(c *gin.Context) (*models.Post, bool) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		r.writeError(c, apperr.NotFoundf("post %q", c.Param("post_id")))
		return nil, false
	}

	post, err := r.posts.Get(c.Request.Context(), c.Param("username"), postID)
	if err != nil {
		r.writeError(c, err)
		return nil, false
	}
	return post, true
}

// newPost creates a post authored by the caller and sends them back to
// the global feed
func (r *Router) newPost(c *gin.Context) {
	var in social.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		r.writeError(c, apperr.FieldErrors{"body": "invalid request body"})
		return
	}

	if _, err := r.posts.Create(c.Request.Context(), currentUser(c), in); err != nil {
		r.writeError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// editPost updates a post. A non-author lands on the canonical read view
// instead of an error page.
func (r *Router) editPost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		r.writeError(c, apperr.NotFoundf("post %q", c.Param("post_id")))
		return
	}
	username := c.Param("username")

	var in social.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		r.writeError(c, apperr.FieldErrors{"body": "invalid request body"})
		return
	}

	if _, err := r.posts.Update(c.Request.Context(), currentUser(c), username, postID, in); err != nil {
		if errors.Is(err, apperr.ErrPermissionDenied) {
			c.Redirect(http.StatusFound, postPath(username, postID))
			return
		}
		r.writeError(c, err)
		return
	}

	c.Redirect(http.StatusFound, postPath(username, postID))
}
