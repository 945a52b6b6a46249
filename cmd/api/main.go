package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sanjeebSubedi/Demake-Backend/internal/config"
	"github.com/sanjeebSubedi/Demake-Backend/internal/handlers"
	"github.com/sanjeebSubedi/Demake-Backend/internal/middleware"
	"github.com/sanjeebSubedi/Demake-Backend/internal/repository"
	"github.com/sanjeebSubedi/Demake-Backend/internal/services"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/cache"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger()
	logger.Info("Starting Demake API server...")

	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	redisClient := cache.NewRedisClient(
		cfg.Redis.Addr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
		cfg.Redis.MinIdleConns,
	)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}

	notificationProducer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.NotificationEvents)
	defer notificationProducer.Close()

	userRepo := repository.NewUserRepository(db.DB)
	followRepo := repository.NewFollowRepository(db.DB)
	tweetRepo := repository.NewTweetRepository(db.DB)
	retweetRepo := repository.NewRetweetRepository(db.DB)
	likeRepo := repository.NewLikeRepository(db.DB)
	commentRepo := repository.NewCommentRepository(db.DB)

	userService := services.NewUserService(userRepo, notificationProducer, redisClient, &cfg.JWT, &cfg.Verification, logger)
	followService := services.NewFollowService(userRepo, followRepo, logger)
	tweetService := services.NewTweetService(tweetRepo, userRepo, likeRepo, retweetRepo, logger)
	feedService := services.NewFeedService(tweetRepo, followRepo, likeRepo, retweetRepo, logger)
	likeService := services.NewLikeService(tweetRepo, likeRepo, logger)
	retweetService := services.NewRetweetService(tweetRepo, retweetRepo, logger)
	commentService := services.NewCommentService(commentRepo, logger)

	userHandler := handlers.NewUserHandler(userService)
	followHandler := handlers.NewFollowHandler(followService)
	tweetHandler := handlers.NewTweetHandler(tweetService, feedService)
	engagementHandler := handlers.NewEngagementHandler(likeService, retweetService)
	commentHandler := handlers.NewCommentHandler(commentService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	router.POST("/users", userHandler.Signup)
	router.GET("/users/verify/:token", userHandler.VerifyEmail)
	router.POST("/login", userHandler.Login)

	protected := router.Group("")
	protected.Use(middleware.NewJWTAuth(&middleware.JWTConfig{Secret: cfg.JWT.Secret}))
	{
		protected.PUT("/users", userHandler.UpdateProfile)

		protected.POST("/follow/:user_id", followHandler.Follow)
		protected.DELETE("/follow/:user_id", followHandler.Unfollow)
		protected.GET("/follow/followers", followHandler.GetFollowers)
		protected.GET("/follow/following", followHandler.GetFollowing)
		protected.GET("/follow/suggestions", followHandler.GetSuggestions)

		protected.POST("/tweets", tweetHandler.Create)
		protected.GET("/tweets/home", tweetHandler.HomeFeed)
		protected.GET("/tweets/user/:user_id", tweetHandler.UserTweets)
		protected.GET("/tweets/user/:user_id/replies", tweetHandler.UserReplies)
		protected.GET("/tweets/:tweet_id", tweetHandler.Detail)
		protected.DELETE("/tweets/:tweet_id", tweetHandler.Delete)

		protected.POST("/likes", engagementHandler.CreateLike)
		protected.DELETE("/likes/:tweet_id", engagementHandler.DeleteLike)
		protected.POST("/retweets", engagementHandler.CreateRetweet)
		protected.DELETE("/retweets/:tweet_id", engagementHandler.DeleteRetweet)

		protected.POST("/comments", commentHandler.Create)
		protected.GET("/comments", commentHandler.List)
		protected.DELETE("/comments/:comment_id", commentHandler.Delete)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func init() {
	if err := os.MkdirAll("configs", 0755); err != nil {
		log.Printf("Failed to create configs directory: %v", err)
	}

	configPath := "configs/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfig(configPath); err != nil {
			log.Printf("Failed to create default config: %v", err)
		}
	}
}

func createDefaultConfig(path string) error {
	defaultConfig := `server:
  port: ":8080"
  mode: "debug"
  read_timeout: 30s
  write_timeout: 30s

database:
  host: "localhost"
  port: 5432
  user: "demake"
  password: "demake"
  dbname: "demake"
  sslmode: "disable"
  max_open_conns: 100
  max_idle_conns: 10

redis:
  host: "localhost"
  port: 6379
  password: ""
  db: 0
  pool_size: 100
  min_idle_conns: 10

kafka:
  brokers:
    - "localhost:9092"
  topics:
    notification_events: "notification-events"

jwt:
  secret: "change-me-in-production"
  expire_time: 24h

verification:
  secret: "change-me-too-in-production"
  token_ttl: 1h

mail:
  host: "localhost"
  port: 1025
  username: ""
  password: ""
  from: "no-reply@demake.local"
  from_name: "Demake"
  app_name: "Demake"
  domain: "localhost:8080"
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
