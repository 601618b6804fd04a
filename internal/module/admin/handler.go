package admin

import (
	"strings"

	"recruiting-portal/internal/global/database"
	"recruiting-portal/internal/global/mailer"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/global/storage"
	"recruiting-portal/internal/module/student"

	"github.com/gin-gonic/gin"
)

func ListRecruiters(c *gin.Context) {
	recruiters, err := Recruiters(database.DB.WithContext(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, recruiters)
}

type inviteReq struct {
	Email string `json:"email"`
}

func InviteRecruiter(c *gin.Context) {
	var req inviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	profile, emailErr, err := Invite(c, database.DB.WithContext(c), mailer.Default(), req.Email)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if emailErr != nil {
		log.Warn("invitation email not sent", "email", profile.Email(), "error", emailErr)
	}
	log.Info("recruiter invited", "profile_id", profile.ID, "email", profile.Email())
	response.Success(c, gin.H{
		"message":   "Recruiter invited successfully",
		"recruiter": profile,
		"emailSent": emailErr == nil,
	})
}

func DemoteRecruiter(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("User ID is required"))
		return
	}
	if err := Demote(database.DB.WithContext(c), id); err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("recruiter demoted", "identity_id", id)
	response.Success(c, gin.H{"message": "Recruiter demoted to student"})
}

func ListStudents(c *gin.Context) {
	var f student.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	students, pagination, err := Students(database.DB.WithContext(c), f)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"students": students, "pagination": pagination})
}

func DeleteStudent(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Student ID is required"))
		return
	}
	removed, err := RemoveStudent(database.DB.WithContext(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	removeResume(c, removed)
	log.Info("student deleted", "student_id", id)
	response.Success(c, gin.H{"message": "Student deleted successfully"})
}

// ResumeURL signs a short-lived download of any résumé.
func ResumeURL(c *gin.Context) {
	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Path is required"))
		return
	}
	bucket, err := storage.Get(c)
	if err != nil {
		response.Fail(c, response.ErrStorage.WithOrigin(err))
		return
	}
	url, err := bucket.PresignDownload(c, path)
	if err != nil {
		response.Fail(c, response.ErrStorage.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"url": url})
}
