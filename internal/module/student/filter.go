package student

import (
	"strings"

	"recruiting-portal/tools"

	"gorm.io/gorm"
)

// Filter holds the listing predicates shared by the recruiter and admin
// student lists.
type Filter struct {
	Query      string   `form:"query"`
	University string   `form:"university"`
	Degree     string   `form:"degree"`
	GPAMin     *float64 `form:"gpaMin"`
	GPAMax     *float64 `form:"gpaMax"`
	HasResume  string   `form:"hasResume"` // "true", "false" or empty
	EventID    string   `form:"eventId"`
	tools.Page
}

func contains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// Apply adds the predicates to q. Count and page queries must both go
// through it so the total matches the items.
func (f Filter) Apply(q *gorm.DB) *gorm.DB {
	if strings.TrimSpace(f.Query) != "" {
		like := contains(f.Query)
		q = q.Where("(full_name LIKE ? OR email LIKE ? OR university LIKE ? OR degree LIKE ?)", like, like, like, like)
	}
	if strings.TrimSpace(f.University) != "" {
		q = q.Where("university LIKE ?", contains(f.University))
	}
	if strings.TrimSpace(f.Degree) != "" {
		q = q.Where("degree LIKE ?", contains(f.Degree))
	}
	if f.GPAMin != nil {
		q = q.Where("gpa >= ?", *f.GPAMin)
	}
	if f.GPAMax != nil {
		q = q.Where("gpa <= ?", *f.GPAMax)
	}
	switch f.HasResume {
	case "true":
		q = q.Where("resume_path IS NOT NULL AND resume_path <> ''")
	case "false":
		q = q.Where("(resume_path IS NULL OR resume_path = '')")
	}
	return q
}
