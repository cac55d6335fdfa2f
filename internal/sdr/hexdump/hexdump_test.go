package hexdump

import (
	"bytes"
	"strings"
	"testing"
)

func seq(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i)
	}
	return buf
}

func TestDumpRows(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	Dump(&out, seq(32), 4)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "00010203 04050607 08090a0b 0c0d0e0f") {
		t.Fatalf("row 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "0x0010") || !strings.Contains(lines[1], "10111213") {
		t.Fatalf("row 1 = %q", lines[1])
	}
}

func TestDumpClampsColumns(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	Dump(&out, seq(8), 8) // only 2 cells available

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d rows, want 1:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "00010203 04050607") {
		t.Fatalf("row = %q", lines[0])
	}
}

func TestDumpShortBufferEmitsNothing(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	Dump(&out, seq(3), 8)
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
	Dump(&out, nil, 8)
	if out.Len() != 0 {
		t.Fatalf("expected no output for nil buffer, got %q", out.String())
	}
}

func TestDumpEnds(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	DumpEnds(&out, seq(256), 16)

	s := out.String()
	if !strings.Contains(s, "  ...") {
		t.Fatalf("missing ellipsis:\n%s", s)
	}
	// Tail offsets are absolute within the buffer.
	if !strings.Contains(s, "0x00f0") {
		t.Fatalf("missing absolute tail offset:\n%s", s)
	}

	out.Reset()
	DumpEnds(&out, seq(24), 16) // regions would overlap: dump whole buffer
	if strings.Contains(out.String(), "...") {
		t.Fatalf("small buffer must dump whole:\n%s", out.String())
	}
}
