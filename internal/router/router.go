package router

import (
	"goalboard/internal/app/board"
	"goalboard/internal/app/bot"
	"goalboard/internal/app/category"
	"goalboard/internal/app/comment"
	"goalboard/internal/app/core"
	"goalboard/internal/app/goal"
	"goalboard/internal/app/health"
	"goalboard/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
	auth   gin.HandlerFunc
}

func NewRouter(logger *zap.Logger, auth gin.HandlerFunc) *Router {
	engine := gin.New()
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())
	return &Router{Engine: engine, auth: auth}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterCoreRoutes(handler core.Handler) {
	core.RegisterRoutes(r.Engine.Group("/api"), handler, r.auth)
}

func (r *Router) RegisterBoardRoutes(handler board.Handler) {
	board.RegisterRoutes(r.Engine.Group("/api", r.auth), handler)
}

func (r *Router) RegisterCategoryRoutes(handler category.Handler) {
	category.RegisterRoutes(r.Engine.Group("/api", r.auth), handler)
}

func (r *Router) RegisterGoalRoutes(handler goal.Handler) {
	goal.RegisterRoutes(r.Engine.Group("/api", r.auth), handler)
}

func (r *Router) RegisterCommentRoutes(handler comment.Handler) {
	comment.RegisterRoutes(r.Engine.Group("/api", r.auth), handler)
}

func (r *Router) RegisterBotRoutes(handler bot.Handler) {
	bot.RegisterRoutes(r.Engine.Group("/api", r.auth), handler)
}

func (r *Router) RegisterSwaggerRoutes() {
	r.Engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (r *Router) Serve(addr string) error {
	return r.Engine.Run(addr)
}
