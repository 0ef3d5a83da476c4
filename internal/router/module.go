package router

import "github.com/gin-gonic/gin"

// Module is one feature area (auth, profile, members, ...). Register mounts
// its routes and route-level middleware on the group it is given.
type Module interface {
	Register(rg *gin.RouterGroup)
}
