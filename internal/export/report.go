package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ReportName is the stable filename of the HTML summary report, overwritten
// on every fetch so the dashboard can link it directly.
const ReportName = "report.html"

const reportShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>eagleview report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 760px; margin: 2rem auto; padding: 0 1rem; color: #1a1a2e; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #d5d5e0; padding: 0.35rem 0.8rem; text-align: left; }
th { background: #f3f3f8; }
</style>
</head>
<body>
%s</body>
</html>
`

// WriteReport renders the summary markdown to HTML and writes it into dir.
func WriteReport(dir, markdown string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	html := fmt.Sprintf(reportShell, body.String())
	if err := os.WriteFile(filepath.Join(dir, ReportName), []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", ReportName, err)
	}
	return ReportName, nil
}
