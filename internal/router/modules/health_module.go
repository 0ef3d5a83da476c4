package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthModule answers liveness probes at GET /healthz.
type HealthModule struct{}

func NewHealthModule() *HealthModule { return &HealthModule{} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
