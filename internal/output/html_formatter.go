package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/basereg/internal/domain"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(outcome *domain.SimulationOutcome) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.SimulationOutcome
		Schemes []*domain.SchemeResult
		Window  *domain.SchemeResult
	}{outcome, []*domain.SchemeResult{&outcome.Reform, &outcome.Legacy}, outcome.ChosenResult()}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
