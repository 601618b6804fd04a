package student

import (
	"log/slog"

	"recruiting-portal/internal/global/logger"
)

var log *slog.Logger

type ModuleStudent struct{}

func (m *ModuleStudent) GetName() string {
	return "Student"
}

func (m *ModuleStudent) Init() {
	log = logger.New("Student")
}
