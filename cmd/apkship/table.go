package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
	alignCenter
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers, len(headers)))
	for _, row := range rows {
		tw.AppendRow(toRow(row, len(headers)))
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i := range headers {
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       textAlign(aligns, i),
			AlignHeader: text.AlignLeft,
		}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// toRow pads or truncates values to the column count.
func toRow(values []string, columns int) table.Row {
	row := make(table.Row, columns)
	for i := range row {
		row[i] = ""
		if i < len(values) {
			row[i] = values[i]
		}
	}
	return row
}

func textAlign(aligns []columnAlignment, column int) text.Align {
	if column >= len(aligns) {
		return text.AlignLeft
	}
	switch aligns[column] {
	case alignRight:
		return text.AlignRight
	case alignCenter:
		return text.AlignCenter
	default:
		return text.AlignLeft
	}
}
