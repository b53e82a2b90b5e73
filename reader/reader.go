// Package reader opens statement files into the sources the importers
// consume. Spreadsheets become grids, PDFs become text lines. The
// spreadsheet engine is picked from the file signature, banks serve
// binary XLS behind an .xls name and XLSX behind the same one.
package reader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	bc "github.com/mabahamo/beancount-chile"
)

// Open reads a statement file and returns the matching source. PDF files
// are routed by extension, spreadsheets by their signature: XLSX files
// are ZIP archives and start with "PK", everything else is treated as
// binary XLS.
func Open(path string) (bc.Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return OpenPDF(path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(raw, []byte("PK")) {
		return openXLSX(path, raw)
	}
	return openXLS(path, raw)
}

// grid is an in-memory GridSource backed by rows of cells.
type grid struct {
	path  string
	cells [][]string
}

func (g *grid) Path() string { return g.path }
func (g *grid) Rows() int    { return len(g.cells) }

func (g *grid) Cols(r int) int {
	if r < 0 || r >= len(g.cells) {
		return 0
	}
	return len(g.cells[r])
}

func (g *grid) Cell(r, c int) string {
	if r < 0 || r >= len(g.cells) {
		return ""
	}
	row := g.cells[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[c])
}

// NewGrid builds a GridSource from rows of cells. Extractor tests use it
// to feed synthetic statements.
func NewGrid(path string, cells [][]string) bc.GridSource {
	return &grid{path: path, cells: cells}
}

func openXLSX(path string, raw []byte) (bc.Source, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &grid{path: path, cells: rows}, nil
}

func openXLS(path string, raw []byte) (bc.Source, error) {
	wb, err := xls.OpenReader(bytes.NewReader(raw), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%s: cannot read first sheet", path)
	}

	cells := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			cells = append(cells, nil)
			continue
		}
		line := make([]string, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			line[c] = row.Col(c)
		}
		cells = append(cells, line)
	}
	return &grid{path: path, cells: cells}, nil
}

// text is an in-memory TextSource.
type text struct {
	path  string
	lines []string
}

func (t *text) Path() string    { return t.path }
func (t *text) Lines() []string { return t.lines }

// NewText builds a TextSource from lines.
func NewText(path string, lines []string) bc.TextSource {
	return &text{path: path, lines: lines}
}

// OpenPDF extracts the text layer of a PDF into a TextSource, one line
// per visual row, words joined with single spaces.
func OpenPDF(path string) (bc.Source, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("%s: page %d: %w", path, i, err)
		}
		for _, row := range rows {
			var words []string
			for _, word := range row.Content {
				if s := strings.TrimSpace(word.S); s != "" {
					words = append(words, s)
				}
			}
			if len(words) > 0 {
				lines = append(lines, strings.Join(words, " "))
			}
		}
	}
	return &text{path: path, lines: lines}, nil
}
