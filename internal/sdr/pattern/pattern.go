// Package pattern generates and verifies the counting pattern used as the
// content oracle for interleaver testing. The pattern is a sequence of 16-bit
// words, word[i] = i mod 65536, written little-endian; the verifier reads the
// buffer as 32-bit words (two consecutive counters packed low|high<<16) and
// can follow one channel's sub-sequence through an interleaved buffer by
// striding over word positions.
//
// Byte order is explicitly little-endian on every platform. The hardware the
// format models is little-endian, and making the packing explicit keeps writer
// and checker in agreement regardless of host byte order.
package pattern

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	harnesserr "github.com/sdrlab/go-interleave/internal/errors"
)

// Mismatch records one 32-bit word that did not match the expected pattern.
type Mismatch struct {
	Offset int    // byte offset of the word within the checked buffer
	Got    uint32 // value read from the buffer
	Want   uint32 // expected counting word
}

func (m Mismatch) String() string {
	return fmt.Sprintf("offset 0x%04x = %08x instead of %08x", m.Offset, m.Got, m.Want)
}

// Result is the outcome of one buffer check. Every mismatching word is
// recorded; the check never stops at the first defect.
type Result struct {
	Words      int // number of 32-bit words visited
	Mismatches []Mismatch
}

// OK reports whether every visited word matched.
func (r Result) OK() bool { return len(r.Mismatches) == 0 }

// New allocates a buffer of byteLen bytes filled with the counting pattern.
func New(byteLen int) ([]byte, error) {
	if byteLen < 0 {
		return nil, harnesserr.NewPatternError(fmt.Sprintf("new: invalid length %d", byteLen), nil)
	}
	buf := make([]byte, byteLen)
	Fill(buf)
	return buf, nil
}

// Fill writes the counting pattern over buf: 16-bit little-endian words,
// word[i] = i mod 65536. A trailing odd byte is left as-is.
func Fill(buf []byte) {
	words := len(buf) / 2
	for i := 0; i < words; i++ {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(i))
	}
}

// Checker verifies buffers against the counting pattern. The zero value is
// usable; Log and Verbose only control diagnostics, never the result.
type Checker struct {
	Log     *slog.Logger // mismatches (and, when Verbose, every word) are logged here
	Verbose bool         // emit a debug line per visited word
}

// Check compares buf against the counting pattern.
//
// The buffer is treated as byteLen/sampleSize consecutive 32-bit words and
// the word at index i (byte offset 4*i) is visited for i = 0, stride,
// 2*stride, ... . The k-th visited word must equal the counting word for
// counters start+2k and start+2k+1 (mod 65536), packed low|high<<16,
// little-endian. Visiting stops early if a word would run past len(buf).
//
// byteLen/sampleSize may be 0: zero iterations, trivially OK. A nil buf,
// sampleSize < 1 or stride < 1 is a contract violation.
func (c *Checker) Check(buf []byte, byteLen, sampleSize, stride int, start uint16) (Result, error) {
	if buf == nil {
		return Result{}, harnesserr.NewPatternError("check: nil buffer", nil)
	}
	if sampleSize < 1 {
		return Result{}, harnesserr.NewPatternError(fmt.Sprintf("check: invalid sample size %d", sampleSize), nil)
	}
	if stride < 1 {
		return Result{}, harnesserr.NewPatternError(fmt.Sprintf("check: invalid stride %d", stride), nil)
	}

	var res Result
	count := start
	for i := 0; i < byteLen/sampleSize; i += stride {
		off := 4 * i
		if off+4 > len(buf) {
			break
		}

		expect := uint32(count)
		count++
		expect |= uint32(count) << 16
		count++

		got := binary.LittleEndian.Uint32(buf[off:])
		res.Words++
		if got != expect {
			res.Mismatches = append(res.Mismatches, Mismatch{Offset: off, Got: got, Want: expect})
			if c.Log != nil {
				c.Log.Error("pattern mismatch", "offset", fmt.Sprintf("0x%04x", off),
					"got", fmt.Sprintf("%08x", got), "want", fmt.Sprintf("%08x", expect))
			}
		} else if c.Verbose && c.Log != nil {
			c.Log.Debug("pattern word ok", "offset", fmt.Sprintf("0x%04x", off),
				"value", fmt.Sprintf("%08x", got))
		}
	}
	return res, nil
}

// Check runs a quiet check with no per-word diagnostics.
func Check(buf []byte, byteLen, sampleSize, stride int, start uint16) (Result, error) {
	var c Checker
	return c.Check(buf, byteLen, sampleSize, stride, start)
}
