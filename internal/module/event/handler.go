package event

import (
	"time"

	"recruiting-portal/internal/global/database"
	"recruiting-portal/internal/global/middleware"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"

	"github.com/gin-gonic/gin"
)

type createOrCloseReq struct {
	Name   string `json:"name"`
	Action string `json:"action"`
}

// CreateOrClose creates an event from {name} or closes the active one on
// {action:"close"}.
func CreateOrClose(c *gin.Context) {
	var req createOrCloseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err).WithTips("Invalid form data"))
		return
	}
	profile, _ := middleware.GetProfile(c)
	db := database.DB.WithContext(c)

	if req.Action == "close" {
		event, err := CloseActive(db, time.Now())
		if err != nil {
			response.Fail(c, err)
			return
		}
		log.Info("event closed", "event_id", event.ID, "name", event.Name, "by", profile.ID)
		response.Success(c, gin.H{"success": true, "event": event})
		return
	}

	event, err := Create(db, req.Name)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("event created", "event_id", event.ID, "name", event.Name, "by", profile.ID)
	response.Success(c, event)
}

type activeEvent struct {
	model.RecruitingEvent
	StudentCount   int64 `json:"studentCount"`
	InterviewCount int64 `json:"interviewCount"`
}

// ListEvents returns every event plus the active one with its counts.
func ListEvents(c *gin.Context) {
	db := database.DB.WithContext(c)
	events, err := List(db)
	if err != nil {
		response.Fail(c, err)
		return
	}

	var active *activeEvent
	for _, e := range events {
		if !e.IsActive {
			continue
		}
		students, interviews, err := Counts(db, e.ID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		active = &activeEvent{RecruitingEvent: e, StudentCount: students, InterviewCount: interviews}
		break
	}
	response.Success(c, gin.H{"events": events, "activeEvent": active})
}
