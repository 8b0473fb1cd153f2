package batch

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderTable formats a summary for the terminal.
func RenderTable(sum Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Video", "Status", "Attempts", "Time", "Output"})

	for _, it := range sum.Items {
		tw.AppendRow(table.Row{
			filepath.Base(it.Video),
			it.Status(),
			attempts(it),
			it.Result.Elapsed.Round(time.Second).String(),
			output(it),
		})
	}
	tw.AppendFooter(table.Row{"", strconv.Itoa(sum.Succeeded) + " done", "", sum.Elapsed.Round(time.Second).String(), ""})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: 80},
	})
	return tw.Render()
}

func attempts(it Item) string {
	if it.Result.GenerationAttempts == 0 {
		return "-"
	}
	return strconv.Itoa(it.Result.GenerationAttempts)
}

func output(it Item) string {
	switch it.Status() {
	case "failed":
		return it.Err.Error()
	case "empty":
		return "no speech detected"
	default:
		return it.Result.Document
	}
}
