package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/gym-membership-directory/internal/interface/http"
	"github.com/oksasatya/gym-membership-directory/internal/interface/middleware"
)

// AuthModule exposes the public account endpoints.
// POST /api/signup, and POST /api/login when the local identity driver is active.
type AuthModule struct {
	Signup *handlers.SignupHandler
	Login  *handlers.LoginHandler // nil with an external identity provider
	Redis  *redis.Client
}

func NewAuthModule(signup *handlers.SignupHandler, login *handlers.LoginHandler, rdb *redis.Client) *AuthModule {
	return &AuthModule{Signup: signup, Login: login, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP("signup"), nil) // 10 req/min per IP
	rg.POST("/signup", signupLimiter, m.Signup.Signup)

	if m.Login != nil {
		loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP("login"), nil)
		rg.POST("/login", loginLimiter, m.Login.Login)
	}
}
