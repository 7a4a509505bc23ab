package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apihttp "github.com/digitallaunch/launchpad-backend/internal/api/http"
	"github.com/digitallaunch/launchpad-backend/internal/api/http/middleware"
	"github.com/digitallaunch/launchpad-backend/internal/landing"
	projecthttp "github.com/digitallaunch/launchpad-backend/internal/projects/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Projects    *projecthttp.Handler
	Landing     *landing.Handler
	Logger      *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(cors.Default())

	health := apihttp.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	health.RegisterRoutes(r)

	api := r.Group("/api/v1")
	dep.Projects.Register(api)

	dep.Landing.Register(r)

	return r
}
