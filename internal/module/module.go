package module

import (
	"recruiting-portal/internal/module/admin"
	"recruiting-portal/internal/module/auth"
	"recruiting-portal/internal/module/event"
	"recruiting-portal/internal/module/interview"
	"recruiting-portal/internal/module/ping"
	"recruiting-portal/internal/module/report"
	"recruiting-portal/internal/module/student"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	registerModule([]Module{
		&ping.ModulePing{},
		&auth.ModuleAuth{},
		&event.ModuleEvent{},
		&student.ModuleStudent{},
		&interview.ModuleInterview{},
		&report.ModuleReport{},
		&admin.ModuleAdmin{},
	})
}
