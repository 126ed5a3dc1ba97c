package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/postline/postline/internal/apperr"
)

// addComment attaches a comment to a post and sends the caller back to
// the post view
func (r *Router) addComment(c *gin.Context) {
	post, ok := r.resolvePost(c)
	if !ok {
		return
	}

	var in struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		r.writeError(c, apperr.FieldErrors{"body": "invalid request body"})
		return
	}

	if _, err := r.comments.AddComment(c.Request.Context(), post, currentUser(c), in.Text); err != nil {
		r.writeError(c, err)
		return
	}

	c.Redirect(http.StatusFound, postPath(c.Param("username"), post.ID))
}

// follow creates a follow edge toward the named author and returns to
// their profile
func (r *Router) follow(c *gin.Context) {
	username := c.Param("username")
	if _, err := r.follows.Follow(c.Request.Context(), currentUser(c), username); err != nil {
		r.writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+username)
}

// unfollow removes the follow edge toward the named author and returns to
// their profile
func (r *Router) unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := r.follows.Unfollow(c.Request.Context(), currentUser(c), username); err != nil {
		r.writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+username)
}
