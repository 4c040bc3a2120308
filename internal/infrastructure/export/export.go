// Package export genera los archivos descargables (planilla y PDF) a partir de una dto.Table.
package export

import (
	"fmt"
	"time"
)

// Content types de los formatos generados.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// Filename nombre de archivo con la fecha del día: base_YYYY-MM-DD.ext.
func Filename(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", base, now.Format("2006-01-02"), ext)
}
