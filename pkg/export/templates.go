package export

import (
	"bytes"
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplate *template.Template

func init() {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time, layout string) string {
			return t.Format(layout)
		},
		"inc": func(i int) int { return i + 1 },
	}

	content, err := templateFS.ReadFile("templates/report.html")
	if err != nil {
		reportTemplate = template.Must(template.New("report").Funcs(funcMap).Parse(fallbackTemplate))
		return
	}

	reportTemplate = template.Must(template.New("report").Funcs(funcMap).Parse(string(content)))
}

// TemplateData holds data for report template rendering.
type TemplateData struct {
	UserName    string
	GeneratedAt time.Time
	Analysis    *Analysis
	Responses   []Response
}

// RenderReportHTML renders the report template with provided data.
func RenderReportHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fallbackTemplate is used if the embedded template fails to load.
const fallbackTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Feedback Report</title></head>
<body>
<h1>360 Feedback Report for {{.UserName}}</h1>
<p>Generated {{formatDate .GeneratedAt "Jan 2, 2006"}}</p>
{{if .Analysis}}
<h2>AI Analysis</h2>
<p>{{.Analysis.Summary}}</p>
{{if .Analysis.Themes}}<ul>{{range .Analysis.Themes}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{range $group, $note := .Analysis.PerGroup}}<h3>{{$group}}</h3><p>{{$note}}</p>{{end}}
{{if .Analysis.Advice}}<h3>Advice</h3><p>{{.Analysis.Advice}}</p>{{end}}
{{end}}
<h2>Responses</h2>
{{range $i, $r := .Responses}}
<h3>Response {{inc $i}} ({{$r.Relationship}})</h3>
<p>{{$r.QChange}}</p>
<p>{{$r.QActions}}</p>
{{end}}
</body>
</html>`
