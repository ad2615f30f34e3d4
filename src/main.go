package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path"
	"staybook/src/boot"
	"staybook/src/config"
	"staybook/src/db"
	"staybook/src/lib"
	awslib "staybook/src/lib/aws"
	"staybook/src/middlewares"
	"staybook/src/utils"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const apiPrefix = "/api"

func setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestLogger, middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine, enabled bool) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		if enabled {
			err := errors.New("server is under maintenance")
			log.Warn().Str("path", ctx.Request.URL.Path).Msg(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": err.Error(), "error": "UNAVAILABLE"})
			return
		}
		ctx.Next()
	})
	return g
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	if cfg.Env == "local" || len(cfg.CORSAllowedOrigins) == 0 {
		return cors.Default()
	}
	cc := cors.DefaultConfig()
	cc.AllowOrigins = cfg.CORSAllowedOrigins
	cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
	cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
	cc.AllowCredentials = true
	return cors.New(cc)
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterValidations(v)
	}
}

func apiGroup(g *gin.Engine) *gin.RouterGroup {
	return g.Group(apiPrefix)
}

// registerRoutes mounts every route group on router.
func (a *App) registerRoutes(router *gin.Engine) {
	public := apiGroup(router)
	a.guestAuthHandlers(public)
	a.publicSpotHandlers(public)
	a.publicPromotionHandlers(public)
	a.publicGiftCardHandlers(public)
	a.lookupHandlers(public)
	a.contactHandlers(public)

	authorized := apiGroup(router)
	authorized.Use(middlewares.Auth(a.Config.JWT.Secret, a.Denylist))
	{
		authorized = a.accountHandlers(authorized)
		authorized = a.spotHandlers(authorized)
		authorized = a.mediaHandlers(authorized)
		authorized = a.bookingHandlers(authorized)
		authorized = a.paymentHandlers(authorized)
		authorized = a.promotionHandlers(authorized)
		authorized = a.giftCardHandlers(authorized)
		authorized = a.reviewHandlers(authorized)
		authorized = a.favoriteHandlers(authorized)
		a.notificationHandlers(authorized)
	}
}

func newUploader(ctx context.Context, cfg config.StorageConfig) awslib.Uploader {
	if cfg.Bucket == "" {
		log.Info().Msg("S3_ASSETS_BUCKET not set, image uploads disabled")
		return nil
	}
	client, err := awslib.GetS3Client(ctx)
	if err != nil {
		return nil
	}
	return awslib.NewS3Uploader(s3.NewPresignClient(client), cfg.Bucket, cfg.PublicBaseURL, cfg.UploadTTL)
}

func newDenylist(cfg config.RedisConfig) lib.TokenDenylist {
	if cfg.URL == "" {
		log.Info().Msg("REDIS_URL not set, token revocation disabled")
		return nil
	}
	client, err := lib.NewRedisClient(cfg.URL)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing redis client")
		return nil
	}
	return lib.NewTokenDenylist(client)
}

func main() {
	if os.Getenv("API_ENV") == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			log.Warn().Err(err).Msg("No .env file loaded")
		}
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	lib.InitLogger(cfg.Env, cfg.Log.Level, cfg.Log.File)
	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to database")
	}
	defer db.Close(gdb)
	if err := boot.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("Could not migrate database")
	}
	sched, err := boot.InitScheduler(gdb, cfg.Scheduler)
	if err != nil {
		log.Error().Err(err).Msg("Background jobs are not running")
	}
	defer boot.StopScheduler(sched)

	app := &App{
		DB:          gdb,
		Config:      cfg,
		Mailer:      lib.NewMailer(cfg.SMTP),
		Uploader:    newUploader(context.Background(), cfg.Storage),
		Denylist:    newDenylist(cfg.Redis),
		AuthLimiter: middlewares.NewIPRateLimiter(rate.Every(6*time.Second), 10, 10*time.Minute),
	}

	registerValidations()
	router := setupRouter()
	router.Use(corsMiddleware(cfg))
	router = maintenanceModeMiddleware(router, cfg.MaintenanceMode)
	app.registerRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
}
