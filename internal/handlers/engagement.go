package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/middleware"
	"github.com/sanjeebSubedi/Demake-Backend/internal/services"
)

// EngagementHandler serves likes and retweets; the two interactions have
// the same request shape.
type EngagementHandler struct {
	likeService    *services.LikeService
	retweetService *services.RetweetService
}

func NewEngagementHandler(likeService *services.LikeService, retweetService *services.RetweetService) *EngagementHandler {
	return &EngagementHandler{
		likeService:    likeService,
		retweetService: retweetService,
	}
}

type engagementRequest struct {
	TweetID uuid.UUID `json:"tweet_id" binding:"required"`
}

func (h *EngagementHandler) CreateLike(c *gin.Context) {
	var req engagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result, err := h.likeService.Like(c.Request.Context(), middleware.GetUserID(c), req.TweetID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *EngagementHandler) DeleteLike(c *gin.Context) {
	tweetID, err := uuid.Parse(c.Param("tweet_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid tweet ID"})
		return
	}

	count, err := h.likeService.Unlike(c.Request.Context(), middleware.GetUserID(c), tweetID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"like_count": count})
}

func (h *EngagementHandler) CreateRetweet(c *gin.Context) {
	var req engagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result, err := h.retweetService.Retweet(c.Request.Context(), middleware.GetUserID(c), req.TweetID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tweet retweeted successfully",
		"data":    result,
	})
}

func (h *EngagementHandler) DeleteRetweet(c *gin.Context) {
	tweetID, err := uuid.Parse(c.Param("tweet_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid tweet ID"})
		return
	}

	count, err := h.retweetService.Unretweet(c.Request.Context(), middleware.GetUserID(c), tweetID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Retweet deleted successfully.",
		"retweet_count": count,
	})
}
