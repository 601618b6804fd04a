package interview

import (
	"recruiting-portal/internal/global/database"
	"recruiting-portal/internal/global/middleware"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/global/storage"
	"recruiting-portal/internal/module/student"

	"github.com/gin-gonic/gin"
)

func RecordInterview(c *gin.Context) {
	profile, _ := middleware.GetProfile(c)

	var req Rating
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err).WithTips("Invalid form data"))
		return
	}
	saved, err := Record(database.DB.WithContext(c), profile, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("interview recorded",
		"interview_id", saved.ID,
		"student_id", saved.StudentID,
		"recruiter_id", saved.RecruiterID)
	response.Success(c, saved)
}

func ListStudents(c *gin.Context) {
	profile, _ := middleware.GetProfile(c)

	var f student.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	items, total, err := ListCandidates(database.DB.WithContext(c), profile.ID, f)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"items": items, "total": total})
}

// ListStudentSummaries lists the active event's students with the
// interview aggregates of every recruiter.
func ListStudentSummaries(c *gin.Context) {
	var f student.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	items, total, err := ListSummaries(database.DB.WithContext(c), f)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"items": items, "total": total})
}

// GetStudent returns one candidate; ?signedResume=1 adds a short-lived
// résumé URL.
func GetStudent(c *gin.Context) {
	profile, _ := middleware.GetProfile(c)

	candidate, err := GetCandidate(database.DB.WithContext(c), profile.ID, c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	if c.Query("signedResume") == "1" && candidate.HasResume() {
		bucket, err := storage.Get(c)
		if err != nil {
			response.Fail(c, response.ErrStorage.WithOrigin(err))
			return
		}
		url, err := bucket.PresignDownload(c, *candidate.ResumePath)
		if err != nil {
			response.Fail(c, response.ErrStorage.WithOrigin(err))
			return
		}
		candidate.SignedResumeURL = url
	}
	response.Success(c, candidate)
}
