package category

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.POST("/goal_categories", handler.CreateCategory)
	rg.GET("/goal_categories", handler.GetCategories)
	rg.GET("/goal_categories/:id", handler.GetCategory)
	rg.PUT("/goal_categories/:id", handler.UpdateCategory)
	rg.DELETE("/goal_categories/:id", handler.DeleteCategory)
}
