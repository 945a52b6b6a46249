package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sanjeebSubedi/Demake-Backend/internal/middleware"
	"github.com/sanjeebSubedi/Demake-Backend/internal/services"
)

type TweetHandler struct {
	tweetService *services.TweetService
	feedService  *services.FeedService
}

func NewTweetHandler(tweetService *services.TweetService, feedService *services.FeedService) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
		feedService:  feedService,
	}
}

func (h *TweetHandler) Create(c *gin.Context) {
	var req services.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	tweet, err := h.tweetService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tweet created successfully.",
		"data":    tweet,
	})
}

func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, err := uuid.Parse(c.Param("tweet_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid tweet ID"})
		return
	}

	if err := h.tweetService.Delete(c.Request.Context(), tweetID, middleware.GetUserID(c)); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tweet deleted successfully."})
}

func (h *TweetHandler) HomeFeed(c *gin.Context) {
	tab := c.DefaultQuery("tab", services.TabAll)
	if tab != services.TabAll && tab != services.TabFollowing {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid tab"})
		return
	}
	skip, limit := pagination(c)

	feed, err := h.feedService.HomeFeed(c.Request.Context(), middleware.GetUserID(c), tab, skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tweets": feed})
}

func (h *TweetHandler) Detail(c *gin.Context) {
	tweetID, err := uuid.Parse(c.Param("tweet_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid tweet ID"})
		return
	}

	replySkip := 0
	if raw := c.Query("reply_skip"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			replySkip = parsed
		}
	}
	replyLimit := defaultPageLimit
	if raw := c.Query("reply_limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 && parsed <= maxPageLimit {
			replyLimit = parsed
		}
	}

	detail, err := h.tweetService.Detail(c.Request.Context(), tweetID, replySkip, replyLimit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *TweetHandler) UserTweets(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user ID"})
		return
	}
	skip, limit := pagination(c)

	tweets, err := h.tweetService.UserTweets(c.Request.Context(), userID, skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tweets": tweets})
}

func (h *TweetHandler) UserReplies(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user ID"})
		return
	}
	skip, limit := pagination(c)

	replies, err := h.tweetService.UserReplies(c.Request.Context(), userID, skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"replies": replies})
}
