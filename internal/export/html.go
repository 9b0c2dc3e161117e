package export

import (
	"fmt"
	"html/template"
	"io"
)

// The HTML export is a single self-contained document; escaping is the
// template engine's job.
const htmlExport = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Email Export</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
.email { background: white; border-radius: 8px; padding: 20px; margin-bottom: 20px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.email-header { border-bottom: 1px solid #eee; padding-bottom: 10px; margin-bottom: 15px; }
.email-meta { color: #666; font-size: 14px; margin: 4px 0; }
.email-subject { font-size: 18px; font-weight: 600; margin: 0 0 10px 0; }
.email-body { white-space: pre-wrap; font-family: inherit; line-height: 1.6; }
.email-index { color: #999; font-size: 12px; float: right; }
</style>
</head>
<body>
<h1>Email Export ({{len .}} messages)</h1>
{{range $i, $e := .}}<div class="email">
<div class="email-header">
<span class="email-index">#{{add1 $i}}</span>
<h2 class="email-subject">{{if $e.Subject}}{{$e.Subject}}{{else}}(No Subject){{end}}</h2>
<p class="email-meta"><strong>From:</strong> {{$e.From}}</p>
<p class="email-meta"><strong>To:</strong> {{$e.To}}</p>
<p class="email-meta"><strong>Date:</strong> {{$e.Date}}</p>
</div>
<div class="email-body">{{$e.BodyText}}</div>
</div>
{{end}}</body>
</html>
`

var htmlTmpl = template.Must(template.New("export").
	Funcs(template.FuncMap{"add1": func(i int) int { return i + 1 }}).
	Parse(htmlExport))

// WriteHTML renders the full styled export document.
func WriteHTML(w io.Writer, items []Item) error {
	if err := htmlTmpl.Execute(w, items); err != nil {
		return fmt.Errorf("render html export: %w", err)
	}
	return nil
}
