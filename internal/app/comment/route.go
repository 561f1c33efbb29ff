package comment

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.POST("/goal_comments", handler.CreateComment)
	rg.GET("/goal_comments", handler.GetComments)
	rg.GET("/goal_comments/:id", handler.GetComment)
	rg.PUT("/goal_comments/:id", handler.UpdateComment)
	rg.DELETE("/goal_comments/:id", handler.DeleteComment)
}
