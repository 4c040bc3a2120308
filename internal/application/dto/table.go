package dto

// Table datos tabulares listos para exportar (xlsx, pdf). Todas las celdas ya vienen formateadas.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}
