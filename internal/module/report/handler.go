package report

import (
	"time"

	"recruiting-portal/internal/global/database"
	"recruiting-portal/internal/global/mailer"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/module/event"
	"recruiting-portal/tools"

	"github.com/gin-gonic/gin"
)

// CloseEvent runs the end-of-event report: aggregate, email, close.
func CloseEvent(c *gin.Context) {
	result, err := CloseAndReport(c, database.DB.WithContext(c), mailer.Default(), time.Now())
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("event closed with report",
		"event_id", result.Event.ID,
		"students", result.Rows,
		"interviews", result.KPIs.TotalInterviews,
		"email_id", result.EmailID)
	response.Success(c, gin.H{"success": true, "result": result})
}

// Export downloads the report of any event as a spreadsheet.
func Export(c *gin.Context) {
	db := database.DB.WithContext(c)
	ev, err := event.Get(db, c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	r, err := Load(db, ev)
	if err != nil {
		response.Fail(c, err)
		return
	}
	buf, err := r.Workbook()
	if err != nil {
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	tools.SendBytes(c, exportName(ev), tools.ExcelContentType, buf.Bytes())
}
