package router

import (
	"time"

	"github.com/redis/go-redis/v9"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
	"worksite/backend/internal/middleware"
	"worksite/backend/internal/pkg/repository/postgresql"
	"worksite/backend/internal/pkg/repository/redisdb"

	"worksite/backend/internal/repository/postgres/attendance"
	"worksite/backend/internal/repository/postgres/site"
	"worksite/backend/internal/repository/postgres/worker"

	attendance_controller "worksite/backend/internal/controller/http/v1/attendance"
	auth_controller "worksite/backend/internal/controller/http/v1/auth"
	site_controller "worksite/backend/internal/controller/http/v1/site"
	worker_controller "worksite/backend/internal/controller/http/v1/worker"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	port       string
	auth       *auth.Auth
	jwtKey     string
	qrWindow   time.Duration
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	jwtKey string,
	qrWindow time.Duration,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		jwtKey,
		qrWindow,
	}
}

func (r Router) Init() error {

	r.HandleMethodNotAllowed = true
	r.Use(middleware.Cors())

	codes := redisdb.NewStore(r.redisDB)

	// - postgresql
	workerPostgres := worker.NewRepository(r.postgresDB)
	sitePostgres := site.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB, codes, r.qrWindow)

	// controller
	authController := auth_controller.NewController(workerPostgres, r.jwtKey)
	workerController := worker_controller.NewController(workerPostgres)
	siteController := site_controller.NewController(sitePostgres, codes, r.qrWindow)
	attendanceController := attendance_controller.NewController(attendancePostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #worker
	r.Get("/api/v1/worker/me", workerController.Me, middleware.Authenticate(r.auth))
	r.Get("/api/v1/worker/list", workerController.GetList, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Get("/api/v1/worker/:id", workerController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Post("/api/v1/worker/create", workerController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/worker/:id", workerController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/worker/:id", workerController.Deactivate, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #site
	r.Get("/api/v1/site/list", siteController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/site/qrsheet", siteController.QRSheet, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Get("/api/v1/site/:id", siteController.GetDetailById, middleware.Authenticate(r.auth))
	r.Post("/api/v1/site/create", siteController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/site/:id/qrcode", siteController.GenerateQR, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/site/:id", siteController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/site/:id", siteController.Deactivate, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Post("/api/v1/attendance/scan", attendanceController.Scan, middleware.Authenticate(r.auth))
	r.Put("/api/v1/attendance/:id/approve", attendanceController.Approve, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Get("/api/v1/attendance", attendanceController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/stats", attendanceController.GetStats, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/export", attendanceController.Export, middleware.Authenticate(r.auth, auth.RoleSupervisor, auth.RoleAdmin))
	r.Get("/api/v1/attendance/:id", attendanceController.GetDetailById, middleware.Authenticate(r.auth))

	return r.Run(r.port)
}
