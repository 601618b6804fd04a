package auth

import (
	"log/slog"

	"recruiting-portal/internal/global/logger"
)

var log *slog.Logger

type ModuleAuth struct{}

func (m *ModuleAuth) GetName() string {
	return "Auth"
}

func (m *ModuleAuth) Init() {
	log = logger.New("Auth")
}
