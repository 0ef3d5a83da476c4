package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-membership-directory/internal/application"
	handlers "github.com/oksasatya/gym-membership-directory/internal/interface/http"
	"github.com/oksasatya/gym-membership-directory/internal/interface/middleware"
)

// MemberModule wires the admin-only directory routes.
// POST /api/members, GET /api/members, GET /api/members/search,
// DELETE /api/members/:id, POST /api/members/:id/photo
type MemberModule struct {
	Handler *handlers.MemberHandler
	Gate    *application.Gate
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewMemberModule(h *handlers.MemberHandler, gate *application.Gate, rdb *redis.Client, logger *logrus.Logger) *MemberModule {
	return &MemberModule{Handler: h, Gate: gate, Redis: rdb, Logger: logger}
}

func (m *MemberModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/members")
	admin.Use(middleware.Auth(m.Gate, m.Logger))
	admin.Use(protectedLimits(m.Redis)...)
	admin.Use(middleware.RequireAdmin(m.Gate, m.Logger))
	{
		admin.POST("", m.Handler.Upsert)
		admin.GET("", m.Handler.List)
		admin.GET("/search", m.Handler.Search)
		admin.DELETE("/:id", m.Handler.Delete)
		admin.POST("/:id/photo", m.Handler.UploadPhoto)
	}
}

// protectedLimits is the softer limiter pair shared by every authenticated route.
func protectedLimits(rdb *redis.Client) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP("protected"), nil),     // 300 req/min per IP
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID("protected"), nil), // 120 req/min per user
	}
}
