package status

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Series is a named sequence plotted in the run report
type Series struct {
	Name   string
	Values []float64
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(22)
	valueStyle = lipgloss.NewStyle().Bold(true)
)

const (
	plotHeight = 8
	plotWidth  = 60
)

// Report writes the registry's metrics and one plot per non-trivial series
func Report(w io.Writer, title string, reg *Registry, series ...Series) error {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString(keyStyle.UnsetWidth().Render(fmt.Sprintf("  %d metrics", reg.TotalCount())))
	sb.WriteByte('\n')

	reg.Ints.Range(func(key string, v *atomicInt) {
		sb.WriteString(keyStyle.Render(key))
		sb.WriteString(valueStyle.Render(fmt.Sprintf("%d", v.Load())))
		sb.WriteByte('\n')
	})
	reg.Floats.Range(func(key string, v *AtomicFloat) {
		sb.WriteString(keyStyle.Render(key))
		sb.WriteString(valueStyle.Render(fmt.Sprintf("%.4g", v.Get())))
		sb.WriteByte('\n')
	})

	for _, s := range series {
		if len(s.Values) < 2 {
			continue
		}
		sb.WriteByte('\n')
		sb.WriteString(asciigraph.Plot(s.Values,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(s.Name),
		))
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
