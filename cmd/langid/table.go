package main

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/cognicore/langid/pkg/langid/dataset"
	"github.com/cognicore/langid/pkg/langid/store"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func summaryTable(summaries []dataset.Summary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Language,
			fmt.Sprintf("%d", s.Rows),
			fmt.Sprintf("%.1f", s.MeanSampleLen),
			fmt.Sprintf("%.3f", s.CapitalShare),
			fmt.Sprintf("%q", string(s.TopChars)),
		})
	}
	return renderTable(
		[]string{"Language", "Rows", "Mean length", "Capitals", "Top chars"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}

func splitTable(train, test []store.Row) string {
	counts := make(map[string][2]int)
	for _, r := range train {
		c := counts[r.Language]
		c[0]++
		counts[r.Language] = c
	}
	for _, r := range test {
		c := counts[r.Language]
		c[1]++
		counts[r.Language] = c
	}

	langs := make([]string, 0, len(counts))
	for l := range counts {
		langs = append(langs, l)
	}
	sort.Strings(langs)

	rows := make([][]string, 0, len(langs))
	for _, l := range langs {
		rows = append(rows, []string{l, fmt.Sprintf("%d", counts[l][0]), fmt.Sprintf("%d", counts[l][1])})
	}
	return renderTable(
		[]string{"Language", "Train", "Test"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)
}
