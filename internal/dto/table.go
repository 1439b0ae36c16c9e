package dto

// TableMeta is one entry of the user's table list. The backend keeps the
// Spanish field names of its original API.
type TableMeta struct {
	ID        int    `json:"id"`
	Name      string `json:"nombre"`
	CreatedAt string `json:"fecha_creacion"`
}

// TablePage is one page of raw row data. Rows follow the column order of
// Columns; cell values are untyped.
type TablePage struct {
	Columns []string `json:"columnas"`
	Rows    [][]any  `json:"datos"`
}

type DeleteTableResponse struct {
	Message string `json:"msg"`
}

type UploadResponse struct {
	Message string `json:"mensaje"`
}
