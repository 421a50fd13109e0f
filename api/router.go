// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"cloudly/drive-api/aws"
	"cloudly/drive-api/db"
	"cloudly/drive-api/identity"
	"cloudly/drive-api/middleware"
	"cloudly/drive-api/service"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	S3       *aws.S3Client
	Identity *identity.Client
}

func NewRouter() (*API, error) {
	a := &API{}

	d, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = d

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{viper.GetString("host.frontend_origin")},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	s3, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}
	a.S3 = s3

	a.Identity = identity.NewClient()
	guard := middleware.NewAuthGuard(d, a.Identity)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	files := main.Group("/files")
	{
		// GET /api/files/public/:id		-> Public file metadata + 7 day URL, no auth
		files.GET("/public/:id", cacheFor(30), a.FilePublicFetch)

		// GET /api/files/public/:id/stream	-> Proxies public file bytes, no auth
		files.GET("/public/:id/stream", a.FilePublicStream)

		// POST /api/files/upload-url		-> Presigned PUT URL for a direct client upload
		files.POST("/upload-url", guard, a.FileUploadURL)

		// POST /api/files/confirm-upload	-> Registers metadata after the client-side PUT
		files.POST("/confirm-upload", guard, a.FileConfirmUpload)

		// GET /api/files			-> Lists the caller's files
		files.GET("", guard, a.FileList)

		// GET /api/files/storage		-> The caller's quota usage
		files.GET("/storage", guard, a.StorageInfo)

		// GET /api/files/:id/download		-> Time-limited download URL
		files.GET("/:id/download", guard, a.FileDownloadURL)

		// GET /api/files/:id/stream		-> Proxies file bytes through the server
		files.GET("/:id/stream", guard, a.FileStream)

		// PATCH /api/files/:id/rename
		files.PATCH("/:id/rename", guard, a.FileRename)

		// PATCH /api/files/:id/star
		files.PATCH("/:id/star", guard, a.FileStar)

		// PATCH /api/files/:id/share		-> Toggles public access
		files.PATCH("/:id/share", guard, a.FileShareToggle)

		// PATCH /api/files/:id/restore		-> Pulls a file back out of the trash
		files.PATCH("/:id/restore", guard, a.FileRestore)

		// DELETE /api/files/:id		-> Trash, or permanent with ?permanent=true
		files.DELETE("/:id", guard, a.FileDelete)
	}

	folders := main.Group("/folders", guard)
	{
		// POST /api/folders
		folders.POST("", a.FolderCreate)

		// GET /api/folders			-> Lists the caller's folders
		folders.GET("", a.FolderList)

		// GET /api/folders/:id
		folders.GET("/:id", a.FolderFetch)

		// PATCH /api/folders/:id/rename
		folders.PATCH("/:id/rename", a.FolderRename)

		// PATCH /api/folders/:id/star
		folders.PATCH("/:id/star", a.FolderStar)

		// DELETE /api/folders/:id		-> Trash cascades, permanent requires empty
		folders.DELETE("/:id", a.FolderDelete)
	}

	if days := viper.GetInt("trash.retention_days"); days > 0 {
		service.TrashPurge(time.Hour, time.Duration(days)*24*time.Hour, d, s3)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
