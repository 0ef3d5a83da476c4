package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-membership-directory/internal/application"
	handlers "github.com/oksasatya/gym-membership-directory/internal/interface/http"
	"github.com/oksasatya/gym-membership-directory/internal/interface/middleware"
)

// ProfileModule serves the signed-in caller's own data.
// Protected: GET /api/profile, GET /api/my-subscription
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Gate    *application.Gate
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewProfileModule(h *handlers.ProfileHandler, gate *application.Gate, rdb *redis.Client, logger *logrus.Logger) *ProfileModule {
	return &ProfileModule{Handler: h, Gate: gate, Redis: rdb, Logger: logger}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Gate, m.Logger))
	auth.Use(protectedLimits(m.Redis)...)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.GET("/my-subscription", m.Handler.MySubscription)
	}
}
