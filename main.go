package main

import (
	"log"
	"server/auth"
	"server/config"
	"server/db"
	"server/faces"
	"server/handlers"
	"server/models"
	"server/patrolwatch"
	"server/storage"
	"server/utils"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionStoreKey       = "this is a long key" // TODO: convert to env variable
	sessionCookieName     = "token"
	sessionExpirationTime = 30 * 86400 // 1 month
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	// Load the face models once; the handle is shared by all handlers
	recognizer, err := faces.NewRecognizer(config.FACE_MODELS_DIR, config.FACE_DETECT_CNN)
	if err != nil {
		log.Printf("Face recognition disabled: %v", err)
	} else {
		defer recognizer.Close()
	}
	handlers.Init(recognizer)

	go patrolwatch.StartWatching()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionStoreKey))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/face/photo"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// Login (password or face)
	router.POST("/guard/login", handlers.GuardLogin)
	router.POST("/guard/face-login", handlers.GuardFaceLogin)
	// Guard management
	authRouter.POST("/guard/save", handlers.GuardSave, models.PermissionAdmin)
	authRouter.POST("/guard/delete", handlers.GuardDelete, models.PermissionAdmin)
	authRouter.GET("/guard/list", handlers.GuardList, models.PermissionSupervisor)
	authRouter.GET("/guard/status", handlers.GuardGetStatus)
	authRouter.POST("/guard/push-token", handlers.GuardSetPushToken)
	authRouter.POST("/guard/logout", handlers.GuardLogout)
	// Face enrollment and verification
	authRouter.POST("/face/enroll", handlers.FaceEnroll, models.PermissionGuard)
	authRouter.POST("/face/verify", handlers.FaceVerify, models.PermissionGuard)
	authRouter.GET("/face/photo", handlers.FacePhoto, models.PermissionSupervisor)
	// Attendance
	authRouter.POST("/attendance/check-in", handlers.AttendanceCheckIn, models.PermissionGuard)
	authRouter.POST("/attendance/check-out", handlers.AttendanceCheckOut, models.PermissionGuard)
	authRouter.GET("/attendance/status", handlers.AttendanceStatus, models.PermissionGuard)
	authRouter.GET("/attendance/list", handlers.AttendanceList, models.PermissionSupervisor)
	// Patrol
	authRouter.POST("/patrol/check-in", handlers.PatrolCheckIn, models.PermissionGuard)
	authRouter.GET("/patrol/points", handlers.PatrolPointList)
	authRouter.POST("/patrol/point/save", handlers.PatrolPointSave, models.PermissionAdmin)
	authRouter.POST("/patrol/point/delete", handlers.PatrolPointDelete, models.PermissionAdmin)
	authRouter.GET("/patrol/logs", handlers.PatrolLogList, models.PermissionSupervisor)
	// Sites
	authRouter.GET("/site/list", handlers.SiteList, models.PermissionSupervisor)
	authRouter.POST("/site/save", handlers.SiteSave, models.PermissionAdmin)
	authRouter.POST("/site/delete", handlers.SiteDelete, models.PermissionAdmin)
	// Leave
	authRouter.POST("/leave/create", handlers.LeaveCreate, models.PermissionGuard)
	authRouter.GET("/leave/list", handlers.LeaveList)
	authRouter.POST("/leave/decide", handlers.LeaveDecide, models.PermissionSupervisor)
	// Payroll
	authRouter.POST("/payroll/generate", handlers.PayslipGenerate, models.PermissionAdmin)
	authRouter.GET("/payroll/list", handlers.PayslipList)
	// Live location feed
	authRouter.GET("/ws", handlers.WebSocket)
	// Buckets
	authRouter.GET("/bucket/list", handlers.BucketList, models.PermissionAdmin)
	authRouter.POST("/bucket/save", handlers.BucketSave, models.PermissionAdmin)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
