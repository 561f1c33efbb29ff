package goal

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.POST("/goals", handler.CreateGoal)
	rg.GET("/goals", handler.GetGoals)
	rg.GET("/goals/:id", handler.GetGoal)
	rg.PUT("/goals/:id", handler.UpdateGoal)
	rg.DELETE("/goals/:id", handler.DeleteGoal)
}
