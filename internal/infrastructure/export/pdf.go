package export

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-console/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const gridColumns = 12

// PDF genera reportes tabulares en A4.
type PDF struct {
	author string
}

// NewPDF construye el generador. author va a los metadatos del documento.
func NewPDF(author string) *PDF { return &PDF{author: author} }

// Render genera el documento y devuelve sus bytes.
func (p *PDF) Render(t dto.Table, now time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(t.Title, true).
		WithAuthor(p.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(t.Title, now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	widths := columnWidths(len(t.Columns))
	m.AddRows(headerRow(t.Columns, widths))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range t.Rows {
		m.AddRows(bodyRow(r, widths))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(gridColumns).Add(
		text.New(fmt.Sprintf("%d registro(s)", len(t.Rows)), props.Text{Size: 8, Align: align.Right, Color: colorGray}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(title string, now time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Gerado em "+now.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 4,
		})),
	)
}

func headerRow(columns []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(widths))
	for i, w := range widths {
		cols = append(cols, col.New(w).Add(text.New(columns[i], props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cols...)
}

func bodyRow(values []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(widths))
	for i, w := range widths {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cols = append(cols, col.New(w).Add(text.New(v, props.Text{
			Size: 8, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

// columnWidths reparte la grilla de 12; el resto va a la primera columna.
// Tablas de más de 12 columnas se recortan.
func columnWidths(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridColumns {
		n = gridColumns
	}
	widths := make([]int, n)
	base := gridColumns / n
	for i := range widths {
		widths[i] = base
	}
	widths[0] += gridColumns - base*n
	return widths
}
