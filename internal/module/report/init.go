package report

import (
	"log/slog"

	"recruiting-portal/internal/global/logger"
)

var log *slog.Logger

type ModuleReport struct{}

func (m *ModuleReport) GetName() string {
	return "Report"
}

func (m *ModuleReport) Init() {
	log = logger.New("Report")
}
