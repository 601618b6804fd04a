package report

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"recruiting-portal/config"
	"recruiting-portal/internal/global/mailer"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"
	"recruiting-portal/internal/module/event"

	"github.com/gocarina/gocsv"
	"gorm.io/gorm"
)

var ErrReceiverMissing = errors.New("REPORT_RECEIVER_EMAIL is not configured")

// Report is everything known about one event at report time.
type Report struct {
	Event      *model.RecruitingEvent
	Rows       []StudentRow
	Interviews []InterviewRow
	KPIs       KPIs
	Top        []StudentRow
}

// Load reads the event's students, newest first, and its interviews with
// the recruiters' emails.
func Load(db *gorm.DB, ev *model.RecruitingEvent) (*Report, error) {
	var students []model.Student
	if err := db.Where("event_id = ?", ev.ID).Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	var interviews []model.Interview
	if err := db.Preload("Recruiter.Identity").
		Where("event_id = ?", ev.ID).
		Order("created_at ASC").
		Find(&interviews).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	rows := Aggregate(ev.Name, students, interviews)
	names := make(map[string]string, len(students))
	for _, s := range students {
		names[s.ID] = s.FullName
	}
	ivRows := make([]InterviewRow, 0, len(interviews))
	for _, iv := range interviews {
		row := InterviewRow{
			StudentName:   names[iv.StudentID],
			RatingOverall: iv.RatingOverall,
			RatingTech:    iv.RatingTech,
			RatingComm:    iv.RatingComm,
			Feedback:      iv.Feedback,
			CreatedAt:     iv.CreatedAt.Format(time.RFC3339),
		}
		if iv.Recruiter != nil {
			row.RecruiterEmail = iv.Recruiter.Email()
		}
		ivRows = append(ivRows, row)
	}

	return &Report{
		Event:      ev,
		Rows:       rows,
		Interviews: ivRows,
		KPIs:       Summarize(students, interviews),
		Top:        Top(rows),
	}, nil
}

// CSV renders one line per student under a header row.
func (r *Report) CSV() ([]byte, error) {
	return gocsv.MarshalBytes(&r.Rows)
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FileName is "report-{event name}" with every non-alphanumeric replaced by
// "-", plus ext.
func FileName(eventName, ext string) string {
	return "report-" + nonAlnum.ReplaceAllString(eventName, "-") + ext
}

func Subject(eventName string, now time.Time) string {
	return fmt.Sprintf("Recruiting Report – %s – %s", eventName, now.Format("2006-01-02"))
}

// Result is what the admin sees after a report run.
type Result struct {
	Event   *model.RecruitingEvent `json:"event"`
	KPIs    KPIs                   `json:"kpis"`
	Rows    int                    `json:"rows"`
	EmailID string                 `json:"emailId"`
}

// CloseAndReport emails the active event's report and then closes the
// event. Any failure before the close leaves the event active.
func CloseAndReport(ctx context.Context, db *gorm.DB, sender mailer.Sender, now time.Time) (*Result, error) {
	ev, err := event.RequireActive(db)
	if err != nil {
		return nil, err
	}
	receiver := config.Get().Email.ReportReceiver
	if receiver == "" {
		return nil, response.ErrEmail.WithOrigin(ErrReceiverMissing)
	}

	r, err := Load(db, ev)
	if err != nil {
		return nil, err
	}
	csv, err := r.CSV()
	if err != nil {
		return nil, response.ErrServerInternal.WithOrigin(err)
	}
	html, err := renderSummary(ev.Name, r.KPIs, r.Top, now)
	if err != nil {
		return nil, response.ErrServerInternal.WithOrigin(err)
	}

	id, err := sender.Send(ctx, mailer.Message{
		To:          []string{receiver},
		Subject:     Subject(ev.Name, now),
		HTML:        html,
		Attachments: []mailer.Attachment{{Filename: FileName(ev.Name, ".csv"), Content: csv}},
	})
	if err != nil {
		return nil, response.ErrEmail.WithOrigin(err)
	}

	closed, err := event.CloseActive(db, now)
	if err != nil {
		// the email is out; only the close needs redoing
		log.Error("report sent but event not closed", "event_id", ev.ID, "email_id", id, "error", err)
		return nil, err
	}
	return &Result{Event: closed, KPIs: r.KPIs, Rows: len(r.Rows), EmailID: id}, nil
}
