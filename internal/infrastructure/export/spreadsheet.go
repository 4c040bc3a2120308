package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-console/internal/application/dto"
)

// SheetName hoja única de cada planilla.
const SheetName = "Dados"

// Spreadsheet escribe tablas como .xlsx.
type Spreadsheet struct{}

// NewSpreadsheet construye el exportador.
func NewSpreadsheet() *Spreadsheet { return &Spreadsheet{} }

// Write escribe la tabla en w: encabezado en negrita y una fila por registro.
func (s *Spreadsheet) Write(w io.Writer, t dto.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	if err := setRow(f, 1, t.Columns); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}

	for i, r := range t.Rows {
		if err := setRow(f, i+2, r); err != nil {
			return err
		}
	}

	if len(t.Columns) > 0 {
		last, _ := excelize.ColumnNumberToName(len(t.Columns))
		_ = f.SetColWidth(SheetName, "A", last, 18)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", n, err)
	}
	return nil
}
