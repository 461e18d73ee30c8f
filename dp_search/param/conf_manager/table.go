package conf_manager

import (
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ssdps/dp_search/cmd"
)

func cmdTablePrint(w io.Writer, container *cmd.FlagContainer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "First Parameter", Align: text.AlignCenter, AlignHeader: text.AlignCenter, WidthMin: 14},
		{Name: "Second Parameter", Align: text.AlignCenter, AlignHeader: text.AlignCenter, WidthMin: 10},
		{Name: "Value", AlignHeader: text.AlignCenter, WidthMin: 20, WidthMax: 60},
	})
	t.SetTitle("COMMAND PARAMETER TABLE")
	t.AppendHeader(table.Row{"First Parameter", "Second Parameter", "Value"}, table.RowConfig{AutoMerge: true})
	for _, flag := range container.GetFlags() {
		valueMap := flag.FlagValue.Get()
		if value, ok := valueMap["firstParaValue"]; len(valueMap) == 1 && ok {
			t.AppendRow(table.Row{flag.Name, "/", value})
			continue
		}
		keys := make([]string, 0, len(valueMap))
		for k := range valueMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		median := len(keys) / 2
		for i, k := range keys {
			name := ""
			if i == median {
				name = flag.Name
			}
			t.AppendRow(table.Row{name, k, valueMap[k]})
		}
		t.AppendSeparator()
	}
	t.Render()
}
