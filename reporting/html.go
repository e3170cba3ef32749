package reporting

import (
	"html/template"
	"io"
	"time"

	"github.com/launchdarkly/unit-harness/framework"
)

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Test Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        h1 { color: #333; }
        h2 { color: #555; margin-top: 30px; }
        table { border-collapse: collapse; width: 100%; margin-top: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; font-weight: bold; }
        tr:nth-child(even) { background-color: #f9f9f9; }
        .pass { color: green; font-weight: bold; }
        .fail { color: red; font-weight: bold; }
        .skip { color: orange; font-weight: bold; }
        .error { background-color: #ffe6e6; font-family: monospace; font-size: 12px; white-space: pre-wrap; }
        .output { color: #666; font-family: monospace; font-size: 12px; white-space: pre-wrap; }
        .summary { margin: 20px 0; }
        .timestamp { color: #666; font-size: 14px; margin-bottom: 20px; }
    </style>
</head>
<body>
    <h1>Test Report</h1>
    <div class="timestamp">Generated: {{.Generated}}</div>
    <div class="summary">
        <h2>Summary</h2>
        <table>
            <tr>
                <th>Total Tests</th>
                <th>Passed</th>
                <th>Failed</th>
                <th>Skipped</th>
            </tr>
            <tr>
                <td>{{.Totals.Total}}</td>
                <td class="pass">{{.Totals.Passed}}</td>
                <td class="fail">{{.Totals.Failed}}</td>
                <td class="skip">{{.Totals.Skipped}}</td>
            </tr>
        </table>
    </div>
    <h2>Test Results</h2>
    <table>
        <tr>
            <th>Test Name</th>
            <th>Status</th>
            <th>Execution Time (ms)</th>
            <th>Details</th>
        </tr>
{{- range .Rows}}
        <tr>
            <td>{{.Name}}</td>
            <td class="{{.StatusClass}}">{{.StatusText}}</td>
            <td>{{.ElapsedMillis}}</td>
            <td class="error">{{.Details}}{{if .Output}}<div class="output">{{range .Output}}{{.}}
{{end}}</div>{{end}}</td>
        </tr>
{{- end}}
    </table>
    <p style="margin-top: 20px; color: #666; font-size: 12px;">Generated by unit-harness</p>
</body>
</html>
`

var htmlReport = template.Must(template.New("report").Parse(htmlReportTemplate))

type htmlReportData struct {
	Generated string
	Totals    framework.Totals
	Rows      []htmlReportRow
}

type htmlReportRow struct {
	Name          string
	StatusClass   string
	StatusText    string
	ElapsedMillis int64
	Details       string
	Output        []string
}

// HTMLReporter writes a single self-contained HTML page when the run finishes.
type HTMLReporter struct {
	collector
	fileOutput
	includeOutput bool
}

// NewHTMLReporter creates the reporter. If includeOutput is true, the debug output of each
// test is shown next to its details.
func NewHTMLReporter(path string, includeOutput bool, info io.Writer, diagnostics framework.Logger) *HTMLReporter {
	return &HTMLReporter{
		fileOutput:    newFileOutput("HTML", path, info, diagnostics),
		includeOutput: includeOutput,
	}
}

func (r *HTMLReporter) TestRunFinished(totals framework.Totals) {
	data := htmlReportData{
		Generated: time.Now().Format("2006-01-02 15:04:05"),
		Totals:    totals,
	}
	for _, result := range r.results {
		row := htmlReportRow{Name: result.Name, ElapsedMillis: result.ElapsedMillis()}
		switch result.Status {
		case framework.StatusSkipped:
			row.StatusClass, row.StatusText, row.Details = "skip", "SKIP", result.SkipReason
		case framework.StatusPassed:
			row.StatusClass, row.StatusText = "pass", "PASS"
		default:
			row.StatusClass, row.StatusText, row.Details = "fail", "FAIL", failureTrace(result)
		}
		if r.includeOutput {
			row.Output = outputLines(result.Output)
		}
		data.Rows = append(data.Rows, row)
	}
	r.write(func(w io.Writer) error {
		return htmlReport.Execute(w, data)
	})
}
