// Package plot renders evaluation results for the terminal.
package plot

import (
	"fmt"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/cognicore/langid/pkg/langid/internalerr"
)

// Options controls how a confusion matrix is drawn.
type Options struct {
	Title     string
	CellWidth int  // minimum width of each count column
	Color     bool // shade cells by magnitude using ANSI colours
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{Title: "Confusion Matrix", CellWidth: 6}
}

// shades go from the smallest non-zero share of the maximum to the largest.
var shades = []text.Colors{
	{text.BgBlue, text.FgHiWhite},
	{text.BgCyan, text.FgBlack},
	{text.BgYellow, text.FgBlack},
	{text.BgRed, text.FgHiWhite},
}

// ConfusionMatrix renders cells as a heatmap table: rows are true labels,
// columns predicted labels, both in labels order.
//
// cells must be square and match labels. Values arrive as float64 so that
// matrices produced elsewhere can be passed straight through; any value that
// is not a whole number fails with ErrNonIntegerCell.
func ConfusionMatrix(cells [][]float64, labels []string, opts Options) (string, error) {
	counts, err := integerCells(cells, labels)
	if err != nil {
		return "", err
	}

	maxCount := 0
	for _, row := range counts {
		for _, c := range row {
			maxCount = max(maxCount, c)
		}
	}

	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	style.Title.Format = text.FormatDefault

	tw := table.NewWriter()
	tw.SetStyle(style)
	if opts.Title != "" {
		tw.SetTitle(opts.Title)
	}
	tw.SetCaption("rows: true label, columns: predicted label")

	header := make(table.Row, 0, len(labels)+1)
	header = append(header, "true \\ predicted")
	for _, l := range labels {
		header = append(header, l)
	}
	tw.AppendHeader(header)

	for i, row := range counts {
		r := make(table.Row, 0, len(row)+1)
		r = append(r, labels[i])
		for _, c := range row {
			cell := fmt.Sprintf("%d", c)
			if opts.Color {
				cell = shade(c, maxCount).Sprint(cell)
			}
			r = append(r, cell)
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(labels))
	for i := range labels {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 2,
			Align:       text.AlignRight,
			AlignHeader: text.AlignRight,
			WidthMin:    opts.CellWidth,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render(), nil
}

func integerCells(cells [][]float64, labels []string) ([][]int, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no labels: %w", internalerr.ErrInvalidInput)
	}
	if len(cells) != len(labels) {
		return nil, fmt.Errorf("matrix has %d rows for %d labels: %w", len(cells), len(labels), internalerr.ErrInvalidInput)
	}

	counts := make([][]int, len(cells))
	for i, row := range cells {
		if len(row) != len(labels) {
			return nil, fmt.Errorf("matrix row %d has %d columns for %d labels: %w", i, len(row), len(labels), internalerr.ErrInvalidInput)
		}
		counts[i] = make([]int, len(row))
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
				return nil, fmt.Errorf("cell [%d][%d] = %v: %w", i, j, v, internalerr.ErrNonIntegerCell)
			}
			if v < 0 {
				return nil, fmt.Errorf("cell [%d][%d] = %v is negative: %w", i, j, v, internalerr.ErrInvalidInput)
			}
			counts[i][j] = int(v)
		}
	}
	return counts, nil
}

func shade(c, maxCount int) text.Colors {
	if c == 0 || maxCount == 0 {
		return nil
	}
	i := int(float64(c) / float64(maxCount) * float64(len(shades)))
	return shades[min(i, len(shades)-1)]
}
