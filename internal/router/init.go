package router

import (
	"github.com/oksasatya/gym-membership-directory/internal/application"
	"github.com/oksasatya/gym-membership-directory/internal/container"
	handlers "github.com/oksasatya/gym-membership-directory/internal/interface/http"
	"github.com/oksasatya/gym-membership-directory/internal/router/modules"
)

// Services are the application services shared by the HTTP modules.
type Services struct {
	Gate      *application.Gate
	Directory *application.DirectoryService
	Profiles  *application.ProfileService
	Signup    *application.SignupService
}

func BuildServices(c *container.Container) Services {
	return Services{
		Gate:      application.NewGate(c.Identity, c.Profiles),
		Directory: application.NewDirectoryService(c.Members, c.Index, c.Photos, c.Notifier, c.Logger),
		Profiles:  application.NewProfileService(c.Profiles),
		Signup:    application.NewSignupService(c.Identity, c.Profiles, c.Notifier, c.Config.AllowAdminSignup, c.Logger),
	}
}

// InitModules builds handlers from the container and registers every module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	svc := BuildServices(c)
	log := c.Logger

	var login *handlers.LoginHandler
	if c.Local != nil {
		login = handlers.NewLoginHandler(c.Local, log)
	}

	r.AddRoot(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(handlers.NewSignupHandler(svc.Signup, log), login, c.Redis))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(svc.Profiles, svc.Directory, log), svc.Gate, c.Redis, log))
	r.Add(modules.NewMemberModule(handlers.NewMemberHandler(svc.Directory, log), svc.Gate, c.Redis, log))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
