// Package hexdump renders buffer contents for human inspection. Output is
// purely diagnostic: nothing here affects verification outcomes.
package hexdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CellWidth is the number of bytes rendered per column, matching the 32-bit
// counting words the verifier operates on.
const CellWidth = 4

// DefaultColumns is the column count used for full-buffer dumps.
const DefaultColumns = 8

var offsetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))

// Dump writes buf as rows of up to columns cells, CellWidth bytes per cell,
// each row prefixed with the byte offset of its first cell. Buffers shorter
// than one cell produce no output.
func Dump(w io.Writer, buf []byte, columns int) {
	dumpAt(w, buf, columns, 0)
}

// dumpAt is Dump with a base added to the printed offsets, so partial dumps
// can show positions within the surrounding buffer.
func dumpAt(w io.Writer, buf []byte, columns, base int) {
	if columns > len(buf)/CellWidth {
		columns = len(buf) / CellWidth
	}
	if columns < 1 {
		return
	}

	rows := len(buf) / columns / CellWidth
	if rows < 1 {
		rows = 1
	}

	var sb strings.Builder
	pos := 0
	for row := 0; row < rows; row++ {
		sb.Reset()
		start := pos
		for column := 0; column < columns; column++ {
			if column > 0 {
				sb.WriteByte(' ')
			}
			for b := 0; b < CellWidth && pos < len(buf); b++ {
				fmt.Fprintf(&sb, "%02x", buf[pos])
				pos++
			}
		}
		fmt.Fprintf(w, "  %s = %s\n", offsetStyle.Render(fmt.Sprintf("0x%04x", base+start)), sb.String())
	}
}

// DumpEnds writes the first and last edge bytes of buf (2 columns each) with
// an ellipsis between, or the whole buffer when it is small enough that the
// two regions would overlap.
func DumpEnds(w io.Writer, buf []byte, edge int) {
	if len(buf) > 2*edge+CellWidth {
		dumpAt(w, buf[:edge], 2, 0)
		fmt.Fprintln(w, "  ...")
		dumpAt(w, buf[len(buf)-edge:], 2, len(buf)-edge)
		return
	}
	dumpAt(w, buf, 2, 0)
}
