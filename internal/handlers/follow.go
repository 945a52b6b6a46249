package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/middleware"
	"github.com/sanjeebSubedi/Demake-Backend/internal/services"
)

type FollowHandler struct {
	followService *services.FollowService
}

func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user ID"})
		return
	}

	username, err := h.followService.Follow(c.Request.Context(), middleware.GetUserID(c), targetID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("You are now following %s", username)})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user ID"})
		return
	}

	username, err := h.followService.Unfollow(c.Request.Context(), middleware.GetUserID(c), targetID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("You have unfollowed %s", username)})
}

// subjectID resolves the optional user_id query parameter, defaulting to
// the caller.
func subjectID(c *gin.Context) (uuid.UUID, error) {
	if raw := c.Query("user_id"); raw != "" {
		return uuid.Parse(raw)
	}
	return middleware.GetUserID(c), nil
}

func (h *FollowHandler) GetFollowers(c *gin.Context) {
	subject, err := subjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user ID"})
		return
	}
	offset, limit := pagination(c)

	followers, err := h.followService.Followers(c.Request.Context(), subject, middleware.GetUserID(c), offset, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": followers})
}

func (h *FollowHandler) GetFollowing(c *gin.Context) {
	subject, err := subjectID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user ID"})
		return
	}
	offset, limit := pagination(c)

	following, err := h.followService.Following(c.Request.Context(), subject, middleware.GetUserID(c), offset, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (h *FollowHandler) GetSuggestions(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	suggestions, err := h.followService.Suggest(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
