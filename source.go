package beancountchile

// Source is a statement document handed to importers. Concrete sources
// are either grids (spreadsheets) or text (PDF rows), matching the two
// ways Chilean banks publish statements.
type Source interface {
	// Path returns the document's path or name, used in error reports
	// and to derive archive filenames.
	Path() string
}

// GridSource is a spreadsheet-like document: a rectangle of cells
// addressed by row and column.
type GridSource interface {
	Source
	// Rows returns the number of rows.
	Rows() int
	// Cols returns the number of columns in row r.
	Cols(r int) int
	// Cell returns the trimmed text of cell (r, c). Out of range cells
	// are empty.
	Cell(r, c int) string
}

// TextSource is a line-oriented document, such as the text layer of a
// PDF statement.
type TextSource interface {
	Source
	// Lines returns the document's lines in reading order.
	Lines() []string
}
