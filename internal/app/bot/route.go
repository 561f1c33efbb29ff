package bot

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.PATCH("/bot/verify", handler.Verify)
}
