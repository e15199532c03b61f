package testutils

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/programhub/internal/api/routes"
	"github.com/linskybing/programhub/internal/application"
	"github.com/linskybing/programhub/internal/repository"
	"github.com/linskybing/programhub/pkg/notify"
	"gorm.io/gorm"
)

// SetupRouter wires the full HTTP stack on top of gdb.
func SetupRouter(gdb *gorm.DB, validator application.Validator) (*gin.Engine, *notify.Hub) {
	gin.SetMode(gin.TestMode)
	hub := notify.NewHub(nil)
	svc := application.New(repository.NewRepositories(gdb), validator, hub)

	r := gin.New()
	routes.RegisterRoutes(r, svc, hub, nil)
	return r, hub
}
