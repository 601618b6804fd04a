package interview

import (
	"log/slog"

	"recruiting-portal/internal/global/logger"
)

var log *slog.Logger

type ModuleInterview struct{}

func (m *ModuleInterview) GetName() string {
	return "Interview"
}

func (m *ModuleInterview) Init() {
	log = logger.New("Interview")
}
