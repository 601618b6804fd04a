package report

import (
	"bytes"
	"html/template"
	"strconv"
	"time"
)

var summaryTemplate = template.Must(template.New("summary").Funcs(template.FuncMap{
	"score": func(v *float64) string {
		if v == nil {
			return "N/A"
		}
		return strconv.FormatFloat(*v, 'f', 2, 64)
	},
	"text": func(v *string, fallback string) string {
		if v == nil || *v == "" {
			return fallback
		}
		return *v
	},
	"gpa": func(v *float64) string {
		if v == nil {
			return "N/A"
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Recruiting Report - {{.EventName}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 20px; }
    .header { background: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
    .kpis { display: flex; gap: 20px; margin-bottom: 30px; }
    .kpi { background: #e9ecef; padding: 15px; border-radius: 6px; text-align: center; min-width: 120px; }
    .kpi-value { font-size: 24px; font-weight: bold; color: #495057; }
    .kpi-label { font-size: 14px; color: #6c757d; margin-top: 5px; }
    table { width: 100%; border-collapse: collapse; margin-top: 20px; }
    th, td { padding: 12px; text-align: left; border-bottom: 1px solid #dee2e6; }
    th { background-color: #f8f9fa; font-weight: 600; }
    .rating { color: #28a745; font-weight: bold; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Recruiting Report - {{.EventName}}</h1>
    <p>Generated on {{.GeneratedAt}}</p>
  </div>
  <div class="kpis">
    <div class="kpi"><div class="kpi-value">{{.KPIs.TotalStudents}}</div><div class="kpi-label">Total Students</div></div>
    <div class="kpi"><div class="kpi-value">{{.KPIs.TotalInterviews}}</div><div class="kpi-label">Total Interviews</div></div>
    <div class="kpi"><div class="kpi-value">{{printf "%.2f" .KPIs.InterviewsPerStudent}}</div><div class="kpi-label">Interviews / Student</div></div>
    <div class="kpi"><div class="kpi-value">{{.KPIs.ResumePercentage}}%</div><div class="kpi-label">With Resumes</div></div>
    <div class="kpi"><div class="kpi-value">{{score .KPIs.AvgOverall}}</div><div class="kpi-label">Avg Rating</div></div>
  </div>
  <h2>Top 10 Candidates</h2>
  <table>
    <thead>
      <tr><th>Name</th><th>University</th><th>Degree</th><th>GPA</th><th>Interviews</th><th>Avg Rating</th><th>Latest Feedback</th></tr>
    </thead>
    <tbody>
    {{- range .Top}}
      <tr>
        <td>{{.FullName}}</td>
        <td>{{.University}}</td>
        <td>{{text .Degree "N/A"}}</td>
        <td>{{gpa .GPA}}</td>
        <td>{{.InterviewsCount}}</td>
        <td class="rating">{{score .AvgOverall}}</td>
        <td>{{if .LatestFeedbackShort}}{{.LatestFeedbackShort}}{{else}}No feedback{{end}}</td>
      </tr>
    {{- end}}
    </tbody>
  </table>
  <p style="margin-top: 30px; color: #6c757d; font-size: 14px;">Complete data is available in the attached CSV file.</p>
</body>
</html>
`))

type summaryData struct {
	EventName   string
	GeneratedAt string
	KPIs        KPIs
	Top         []StudentRow
}

func renderSummary(eventName string, kpis KPIs, top []StudentRow, now time.Time) (string, error) {
	var buf bytes.Buffer
	err := summaryTemplate.Execute(&buf, summaryData{
		EventName:   eventName,
		GeneratedAt: now.Format("2006-01-02 15:04:05 MST"),
		KPIs:        kpis,
		Top:         top,
	})
	return buf.String(), err
}
