package report

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/LinusVanElswijk/mve/internal/scene"
)

const summaryTemplate = `Scene {{ .Path | base }}
{{ repeat 40 "=" }}

Path:     {{ .Path }}
Views:    {{ .ViewCount }}
Bundle:   {{ if .BundleLoaded }}{{ .CameraCount }} cameras, {{ .FeatureCount }} features{{ else }}not loaded{{ end }}
State:    {{ if .Dirty }}unsaved changes{{ else }}clean{{ end }}
{{ if .Views }}
{{ printf "%-6s %-24s %s" "ID" "NAME" "STATE" }}
{{- range .Views }}
{{ printf "%-6d %-24s %s" .ID (.Name | trunc 24) .State }}
{{- end }}
{{ end }}`

// ViewRow is one line of the view table.
type ViewRow struct {
	ID    int
	Name  string
	State string
}

// Summary is the data rendered into the scene report.
type Summary struct {
	Path         string
	ViewCount    int
	Views        []ViewRow
	BundleLoaded bool
	CameraCount  int
	FeatureCount int
	Dirty        bool
}

// Collect gathers a summary from a scene. View names are read through the
// usual lazy path; a view whose metadata cannot be read is reported as
// unreadable instead of failing the whole report. The bundle is loaded on
// demand; a missing or corrupt bundle file is reported as not loaded.
func Collect(s *scene.Scene) Summary {
	summary := Summary{
		Path:      s.Path(),
		ViewCount: len(s.Views()),
	}

	for _, v := range s.Views() {
		row := ViewRow{ID: v.ID(), State: "clean"}
		if v.IsDirty() {
			row.State = "dirty"
		}

		name, err := v.Name()
		if err != nil {
			row.Name = "(unreadable)"
		} else {
			row.Name = name
		}

		summary.Views = append(summary.Views, row)
	}

	if b, err := s.Bundle(); err == nil {
		summary.BundleLoaded = true
		summary.CameraCount = len(b.Cameras)
		summary.FeatureCount = len(b.Features)
	}

	summary.Dirty = s.IsDirty()
	return summary
}

// Render formats the summary as a human-readable report.
func Render(summary Summary) (string, error) {
	tmpl, err := template.New("summary").Funcs(sprig.FuncMap()).Parse(summaryTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse summary template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, summary); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}

	return buf.String(), nil
}
