package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitsocial/internal/domain"
	"fitsocial/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler holds the post service dependency.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// --- DTOs ---

type CreatePostRequest struct {
	Title           string  `json:"title" binding:"required"`
	Content         string  `json:"content"`
	WorkoutID       *string `json:"workoutId"`
	WeeklyWorkoutID *string `json:"weeklyWorkoutId"`
}

// UpdatePostRequest distinguishes "leave the reference alone" (field omitted)
// from "clear it" (field present as empty string).
type UpdatePostRequest struct {
	Title           *string `json:"title"`
	Content         *string `json:"content"`
	WorkoutID       *string `json:"workoutId"`
	WeeklyWorkoutID *string `json:"weeklyWorkoutId"`
}

// parseOptionalRef maps nil→(nil,false), ""→(nil,true) and a hex id→(&id,false).
func parseOptionalRef(raw *string) (*primitive.ObjectID, bool, error) {
	if raw == nil {
		return nil, false, nil
	}
	if *raw == "" {
		return nil, true, nil
	}
	id, err := primitive.ObjectIDFromHex(*raw)
	if err != nil {
		return nil, false, fmt.Errorf("invalid reference ID %q", *raw)
	}
	return &id, false, nil
}

func (h *PostHandler) mapPostError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotPostOwner):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to "+action)
	}
}

// --- Handler Methods ---

// CreatePost godoc
// @Summary Publish a post, optionally referencing a workout or weekly plan
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body CreatePostRequest true "Post details"
// @Success 201 {object} domain.Post
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workoutID, _, err := parseOptionalRef(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	weeklyID, _, err := parseOptionalRef(req.WeeklyWorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	post := &domain.Post{
		Title:           req.Title,
		Content:         req.Content,
		CreatedBy:       user.ID,
		WorkoutID:       workoutID,
		WeeklyWorkoutID: weeklyID,
	}

	created, err := h.postService.CreatePost(c.Request.Context(), post)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListPosts godoc
// @Summary List all posts, newest first
// @Tags Posts
// @Produce json
// @Success 200 {array} domain.Post
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list posts")
		return
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Get a post by ID
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} domain.Post
// @Failure 404 {object} gin.H "Post not found"
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid post ID format")
		return
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), postID)
	if err != nil {
		h.mapPostError(c, err, "get post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost godoc
// @Summary Update a post (author only)
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param post body UpdatePostRequest true "Fields to update"
// @Success 200 {object} domain.Post
// @Failure 403 {object} gin.H "Not the author"
// @Failure 404 {object} gin.H "Post not found"
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid post ID format")
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workoutID, clearWorkout, err := parseOptionalRef(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	weeklyID, clearWeekly, err := parseOptionalRef(req.WeeklyWorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.postService.UpdatePost(c.Request.Context(), user.ID, postID, service.PostUpdate{
		Title:              req.Title,
		Content:            req.Content,
		WorkoutID:          workoutID,
		WeeklyWorkoutID:    weeklyID,
		ClearWorkout:       clearWorkout,
		ClearWeeklyWorkout: clearWeekly,
	})
	if err != nil {
		h.mapPostError(c, err, "update post")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeletePost godoc
// @Summary Delete a post (author only)
// @Tags Posts
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 204 "Deleted"
// @Failure 403 {object} gin.H "Not the author"
// @Failure 404 {object} gin.H "Post not found"
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid post ID format")
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), user.ID, postID); err != nil {
		h.mapPostError(c, err, "delete post")
		return
	}

	c.Status(http.StatusNoContent)
}
