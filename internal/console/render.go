package console

import (
	"embed"
	"html/template"
	"io"

	"calculation-console/internal/calculation"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Row is one table row. Missing values render as empty cells.
type Row struct {
	ID        string
	Operation string
	A         string
	B         string
	Result    string
	CreatedAt string
}

// Rows formats calculations for the table in the order given.
func Rows(calcs []calculation.Calculation) []Row {
	rows := make([]Row, 0, len(calcs))
	for _, c := range calcs {
		row := Row{
			ID:        c.ID,
			Operation: c.Operation,
			A:         formatNumber(c.A),
			B:         formatNumber(c.B),
		}
		if c.Result != nil {
			row.Result = formatNumber(*c.Result)
		}
		if c.CreatedAt != nil {
			row.CreatedAt = *c.CreatedAt
		}
		rows = append(rows, row)
	}
	return rows
}

type consolePage struct {
	State       State
	SubmitLabel string
	Operations  []calculation.Operation
	Rows        []Row
}

type reportPage struct {
	Error        string
	Total        string
	PerOperation []operationLine
}

type operationLine struct {
	Operator string
	Count    int
}

type loginPage struct {
	Email   string
	Error   string
	Success string
}

// RenderConsole writes the console page for v.
func RenderConsole(w io.Writer, v View) error {
	return templates.ExecuteTemplate(w, "console.html", consolePage{
		State:       v.State,
		SubmitLabel: v.State.SubmitLabel(),
		Operations:  calculation.Operations,
		Rows:        Rows(v.Rows),
	})
}

func renderReport(w io.Writer, p reportPage) error {
	return templates.ExecuteTemplate(w, "report.html", p)
}

func renderLogin(w io.Writer, p loginPage) error {
	return templates.ExecuteTemplate(w, "login.html", p)
}
