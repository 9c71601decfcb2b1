package export

import (
	"fmt"
	"io"
	"strings"

	"LocalCanvas/internal/canvas"
	"LocalCanvas/internal/colorconv"
)

// WriteSummary writes a human readable listing of elems.
func WriteSummary(w io.Writer, elems []canvas.Element) error {
	var sb strings.Builder
	sb.WriteString("LocalCanvas Export\n")
	sb.WriteString("==================\n\n")
	fmt.Fprintf(&sb, "Total elements: %d\n\n", len(elems))

	for i, e := range elems {
		b := e.Bounds()
		fmt.Fprintf(&sb, "Element %d (%s %s):\n", i+1, e.Kind(), e.ElementID())
		fmt.Fprintf(&sb, "  Bounds: (%.2f, %.2f) - (%.2f, %.2f)\n", b.X1, b.Y1, b.X2, b.Y2)

		switch e := e.(type) {
		case *canvas.BrushStroke:
			st := e.Style
			fmt.Fprintf(&sb, "  Points: %d\n", len(e.Points))
			fmt.Fprintf(&sb, "  Stroke: %.2f %s\n", st.StrokeWidth, hex(st.StrokeColor))
			if st.FillColor != colorconv.NoFill {
				fmt.Fprintf(&sb, "  Fill: %s\n", hex(st.FillColor))
			}
			if st.Striped() {
				fmt.Fprintf(&sb, "  Stripes: %.2f/%.2f\n", st.StripeWidths[0], st.StripeWidths[1])
			}
			if len(e.Points) > 0 {
				first, last := e.Points[0], e.Points[len(e.Points)-1]
				fmt.Fprintf(&sb, "  Start: (%.2f, %.2f)\n", first.X, first.Y)
				if len(e.Points) > 1 {
					fmt.Fprintf(&sb, "  End: (%.2f, %.2f)\n", last.X, last.Y)
				}
			}
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func hex(packed int) string {
	r, g, b := colorconv.NumberToRGB(packed)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
