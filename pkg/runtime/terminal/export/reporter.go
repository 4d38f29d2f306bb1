package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
	RuleWidth        int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        30,
		ValueWidth:       26,
		UnitWidth:        6,
		DescriptionWidth: 36,
		RuleWidth:        66,
	}
}

// Reporter renders a report as the plain-text summary file
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}, unit string, desc string) string {
			return strings.TrimRight(fmt.Sprintf("| %-*s | %-*v | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DescriptionWidth, desc), " ")
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
		"rule": func() string {
			return strings.Repeat("=", c.config.RuleWidth)
		},
		"upper": strings.ToUpper,
		"inc":   func(i int) int { return i + 1 },
	}

	tmpl := `{{rule}}
  {{upper .Title}}
{{rule}}
{{if .HasPeriod}}
ANALYSIS PERIOD: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}} ({{.Period.Duration}} days)
{{else}}
ANALYSIS PERIOD: no valid readings
{{end}}TOTAL: {{printf "%.2f" .TotalAmount}} {{.Unit}}
{{range .Sections}}
=== {{upper .Title}} ===
{{if .Details}}{{separator}}
{{formatRow "Name" "Value" "Unit" "Description"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Unit .Description}}
{{end}}{{separator}}
{{end}}{{range $i, $note := .Notes}}{{inc $i}}. {{$note}}
{{end}}{{end}}
{{rule}}
{{if not .GeneratedAt.IsZero}}Report Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}
{{end}}{{if .RunID}}Run ID: {{.RunID}}
{{end}}{{rule}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
