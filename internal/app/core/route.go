package core

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler, auth gin.HandlerFunc) {
	rg.POST("/signup", handler.Signup)
	rg.POST("/login", handler.Login)
	rg.GET("/profile", auth, handler.Profile)
	rg.PUT("/profile", auth, handler.UpdateProfile)
	rg.DELETE("/profile", auth, handler.Logout)
	rg.PUT("/update_password", auth, handler.UpdatePassword)
}
