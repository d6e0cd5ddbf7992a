package server

import (
	"context"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cliptube/backend/internal/config"
	"github.com/cliptube/backend/internal/middleware"
	"github.com/cliptube/backend/pkg/logger"
	"github.com/cliptube/backend/pkg/storage"

	commentHttp "github.com/cliptube/backend/internal/modules/comment/delivery/http"
	commentRepo "github.com/cliptube/backend/internal/modules/comment/repository"
	commentService "github.com/cliptube/backend/internal/modules/comment/service"

	dashboardHttp "github.com/cliptube/backend/internal/modules/dashboard/delivery/http"
	dashboardRepo "github.com/cliptube/backend/internal/modules/dashboard/repository"
	dashboardService "github.com/cliptube/backend/internal/modules/dashboard/service"

	engagementHttp "github.com/cliptube/backend/internal/modules/engagement/delivery/http"
	engagementRepo "github.com/cliptube/backend/internal/modules/engagement/repository"
	engagementService "github.com/cliptube/backend/internal/modules/engagement/service"

	playlistHttp "github.com/cliptube/backend/internal/modules/playlist/delivery/http"
	playlistRepo "github.com/cliptube/backend/internal/modules/playlist/repository"
	playlistService "github.com/cliptube/backend/internal/modules/playlist/service"

	postHttp "github.com/cliptube/backend/internal/modules/post/delivery/http"
	postRepo "github.com/cliptube/backend/internal/modules/post/repository"
	postService "github.com/cliptube/backend/internal/modules/post/service"

	searchHttp "github.com/cliptube/backend/internal/modules/search/delivery/http"
	searchService "github.com/cliptube/backend/internal/modules/search/service"

	userHttp "github.com/cliptube/backend/internal/modules/user/delivery/http"
	userRepo "github.com/cliptube/backend/internal/modules/user/repository"
	userService "github.com/cliptube/backend/internal/modules/user/service"

	videoHttp "github.com/cliptube/backend/internal/modules/video/delivery/http"
	videoRepo "github.com/cliptube/backend/internal/modules/video/repository"
	videoService "github.com/cliptube/backend/internal/modules/video/service"

	viewService "github.com/cliptube/backend/internal/modules/view/service"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

// NewServer wires the whole application. Background workers run until
// ctx is cancelled.
func NewServer(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	mediaStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryUploadFolder)
	if err != nil {
		return nil, err
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := searchService.NewSearchService(meiliClient)
	searchHandler := searchHttp.NewSearchHandler(searchSvc)

	engagementRepository := engagementRepo.NewEngagementRepository(db)

	videoRepository := videoRepo.NewVideoRepository(db)
	videoSvc := videoService.NewVideoService(videoRepository, engagementRepository, mediaStorage, searchSvc)

	viewSvc := viewService.NewViewService(redisClient, videoRepository)
	videoHandler := videoHttp.NewVideoHandler(videoSvc, viewSvc)

	commentRepository := commentRepo.NewCommentRepository(db)
	commentSvc := commentService.NewCommentService(commentRepository, videoRepository)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	postRepository := postRepo.NewPostRepository(db)
	postSvc := postService.NewPostService(postRepository)
	postHandler := postHttp.NewPostHandler(postSvc)

	playlistRepository := playlistRepo.NewPlaylistRepository(db)
	playlistSvc := playlistService.NewPlaylistService(playlistRepository, videoRepository)
	playlistHandler := playlistHttp.NewPlaylistHandler(playlistSvc)

	engagementSvc := engagementService.NewEngagementService(engagementRepository)
	engagementHandler := engagementHttp.NewEngagementHandler(engagementSvc)

	dashboardRepository := dashboardRepo.NewDashboardRepository(db)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepository, redisClient)
	dashboardHandler := dashboardHttp.NewDashboardHandler(dashboardSvc)

	userRepository := userRepo.NewUserRepository(db)
	userSvc := userService.NewUserService(userRepository, mediaStorage)
	userHandler := userHttp.NewUserHandler(userSvc)

	go func() {
		logger.L().Info("starting view sync worker")
		viewSvc.StartSyncWorker(ctx)
		logger.L().Info("view sync worker stopped")
	}()

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes. OptionalAuth lets owners see their own drafts.
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/videos", videoHandler.List)
		public.GET("/videos/:id", videoHandler.GetByID)
		public.GET("/videos/:id/comments", commentHandler.ListForVideo)
		public.GET("/search/videos", searchHandler.Videos)

		public.GET("/channels/:channel_id", userHandler.GetChannel)
		public.GET("/channels/username/:username", userHandler.GetChannelByUsername)
		public.GET("/channels/:channel_id/videos", videoHandler.ChannelVideos)
		public.GET("/channels/:channel_id/posts", postHandler.ListForChannel)
		public.GET("/channels/:channel_id/subscribers", engagementHandler.GetChannelSubscribers)

		public.GET("/playlists/:id", playlistHandler.GetByID)
		public.GET("/playlists/:id/videos", playlistHandler.Videos)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me", userHandler.UpdateProfile)
		protected.GET("/me/stats", dashboardHandler.ChannelStats)
		protected.GET("/me/playlists", playlistHandler.ListOwn)
		protected.GET("/me/likes/videos", engagementHandler.GetLikedVideos)
		protected.GET("/me/subscriptions", engagementHandler.GetSubscribedChannels)

		protected.POST("/videos", videoHandler.Publish)
		protected.PUT("/videos/:id", videoHandler.Update)
		protected.DELETE("/videos/:id", videoHandler.Delete)
		protected.PATCH("/videos/:id/publish", videoHandler.TogglePublish)

		protected.POST("/videos/:id/comments", commentHandler.Add)
		protected.PUT("/comments/:id", commentHandler.Update)
		protected.DELETE("/comments/:id", commentHandler.Delete)

		protected.POST("/posts", postHandler.Create)
		protected.PUT("/posts/:id", postHandler.Update)
		protected.DELETE("/posts/:id", postHandler.Delete)

		protected.POST("/playlists", playlistHandler.Create)
		protected.PUT("/playlists/:id", playlistHandler.Update)
		protected.DELETE("/playlists/:id", playlistHandler.Delete)
		protected.POST("/playlists/:id/videos", playlistHandler.AddVideo)
		protected.DELETE("/playlists/:id/videos/:video_id", playlistHandler.RemoveVideo)

		protected.POST("/likes/:kind/:id", engagementHandler.ToggleLike)
		protected.POST("/subscriptions/:channel_id", engagementHandler.ToggleSubscription)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}, nil
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.L().Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
