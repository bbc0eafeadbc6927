package window

import "github.com/PixPMusic/midiparams/internal/host"

// row is one line of the parameter page
type row struct {
	params  []host.ParamDescriptor
	divider bool
}

// layoutRows groups a page's parameters into lines following their layout
// hints: NoNewLine keeps the next parameter on the same line, Divider ends
// the line and draws a separator below it.
func layoutRows(desc host.Descriptor, page host.PageDescriptor) []row {
	var rows []row
	var cur row
	for _, name := range page.Params {
		pd, ok := desc.Param(name)
		if !ok {
			continue
		}
		cur.params = append(cur.params, pd)
		if pd.Layout == host.LayoutNoNewLine {
			continue
		}
		cur.divider = pd.Layout == host.LayoutDivider
		rows = append(rows, cur)
		cur = row{}
	}
	if len(cur.params) > 0 {
		rows = append(rows, cur)
	}
	return rows
}
