// Package format enumerates the channel layouts and sample formats the
// harness understands and exposes the sizing metadata derived from them.
// The sets are closed: every switch below is exhaustive and unknown values
// are reported as errors rather than dispatched dynamically.
package format

import (
	"fmt"

	harnesserr "github.com/sdrlab/go-interleave/internal/errors"
)

// ChannelLayout describes the direction and channel count of a stream.
type ChannelLayout int

const (
	RxX1 ChannelLayout = iota // 1 receive channel
	TxX1                      // 1 transmit channel
	RxX2                      // 2 receive channels (MIMO)
	TxX2                      // 2 transmit channels (MIMO)
)

// SampleFormat describes the on-wire encoding of one interleaved sample unit.
type SampleFormat int

const (
	// SC16Q11 is a complex sample: 16-bit signed I and Q, Q11 scaling.
	SC16Q11 SampleFormat = iota
	// SC16Q11Meta is SC16Q11 with a fixed metadata header prefixed to each buffer.
	SC16Q11Meta
)

// metaHeaderBytes is the size of the metadata header carried by *Meta formats.
const metaHeaderBytes = 16

func (l ChannelLayout) String() string {
	switch l {
	case RxX1:
		return "rx_x1"
	case TxX1:
		return "tx_x1"
	case RxX2:
		return "rx_x2"
	case TxX2:
		return "tx_x2"
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// Channels returns the number of independent channels the layout carries.
func (l ChannelLayout) Channels() (int, error) {
	switch l {
	case RxX1, TxX1:
		return 1, nil
	case RxX2, TxX2:
		return 2, nil
	}
	return 0, harnesserr.NewFormatError(fmt.Sprintf("channels: unknown layout %d", int(l)), nil)
}

func (f SampleFormat) String() string {
	switch f {
	case SC16Q11:
		return "sc16q11"
	case SC16Q11Meta:
		return "sc16q11_meta"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// BytesPerSample returns the byte size of one interleaved sample unit.
func (f SampleFormat) BytesPerSample() (int, error) {
	switch f {
	case SC16Q11, SC16Q11Meta:
		return 4, nil
	}
	return 0, harnesserr.NewFormatError(fmt.Sprintf("bytes per sample: unknown format %d", int(f)), nil)
}

// MetadataBytes returns the size of the metadata header prefixed to each
// buffer in this format, or 0 when the format carries none.
func (f SampleFormat) MetadataBytes() (int, error) {
	switch f {
	case SC16Q11:
		return 0, nil
	case SC16Q11Meta:
		return metaHeaderBytes, nil
	}
	return 0, harnesserr.NewFormatError(fmt.Sprintf("metadata bytes: unknown format %d", int(f)), nil)
}

// ParseLayout resolves a layout name as it appears in config files.
func ParseLayout(s string) (ChannelLayout, error) {
	switch s {
	case "rx_x1":
		return RxX1, nil
	case "tx_x1":
		return TxX1, nil
	case "rx_x2":
		return RxX2, nil
	case "tx_x2":
		return TxX2, nil
	}
	return 0, harnesserr.NewFormatError(fmt.Sprintf("parse layout: unknown name %q", s), nil)
}

// ParseFormat resolves a sample format name as it appears in config files.
func ParseFormat(s string) (SampleFormat, error) {
	switch s {
	case "sc16q11":
		return SC16Q11, nil
	case "sc16q11_meta":
		return SC16Q11Meta, nil
	}
	return 0, harnesserr.NewFormatError(fmt.Sprintf("parse format: unknown name %q", s), nil)
}
