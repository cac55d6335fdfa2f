// Package codec defines the interleave/deinterleave contract the harness
// verifies, plus a reference implementation with the device library's
// semantics: buffers arrive as per-channel blocks, interleaving rearranges
// the payload so consecutive samples alternate by channel, and a metadata
// header (when the format carries one) is never moved.
package codec

import (
	"fmt"

	harnesserr "github.com/sdrlab/go-interleave/internal/errors"
	"github.com/sdrlab/go-interleave/internal/sdr/format"
)

// Status codes mirrored from the device library's error space. They surface
// in TransformError.Code so failures stay recognizable in logs.
const (
	StatusInval       = -2
	StatusUnsupported = -8
)

// Codec transforms a sample buffer between per-channel block order and
// interleaved order, in place. A nil error is the zero status code of the
// underlying library; failures leave the buffer contents undefined.
type Codec interface {
	Interleave(layout format.ChannelLayout, f format.SampleFormat, numSamples int, buf []byte) error
	Deinterleave(layout format.ChannelLayout, f format.SampleFormat, numSamples int, buf []byte) error
}

// Interleaver is the reference Codec implementation.
type Interleaver struct{}

// New returns the reference codec.
func New() *Interleaver { return &Interleaver{} }

// sizes resolves and validates the dimensions of one transform call.
func sizes(layout format.ChannelLayout, f format.SampleFormat, numSamples int, buf []byte) (sampleSize, meta, numChan, totalBytes int, err error) {
	sampleSize, err = f.BytesPerSample()
	if err != nil {
		return 0, 0, 0, 0, harnesserr.NewTransformError("sizes", StatusUnsupported, err)
	}
	meta, err = f.MetadataBytes()
	if err != nil {
		return 0, 0, 0, 0, harnesserr.NewTransformError("sizes", StatusUnsupported, err)
	}
	numChan, err = layout.Channels()
	if err != nil {
		return 0, 0, 0, 0, harnesserr.NewTransformError("sizes", StatusUnsupported, err)
	}

	if numSamples < 0 {
		return 0, 0, 0, 0, harnesserr.NewTransformError(
			fmt.Sprintf("sizes: negative sample count %d", numSamples), StatusInval, nil)
	}
	totalBytes = sampleSize * numSamples
	if totalBytes > len(buf) {
		return 0, 0, 0, 0, harnesserr.NewTransformError(
			fmt.Sprintf("sizes: buffer is %d bytes, need %d", len(buf), totalBytes), StatusInval, nil)
	}
	if totalBytes < meta {
		return 0, 0, 0, 0, harnesserr.NewTransformError(
			fmt.Sprintf("sizes: buffer %d bytes smaller than metadata header %d", totalBytes, meta), StatusInval, nil)
	}
	if (totalBytes-meta)%(sampleSize*numChan) != 0 {
		return 0, 0, 0, 0, harnesserr.NewTransformError(
			fmt.Sprintf("sizes: payload %d bytes not divisible across %d channels", totalBytes-meta, numChan), StatusInval, nil)
	}
	return sampleSize, meta, numChan, totalBytes, nil
}

// Interleave converts the payload from numChan contiguous per-channel blocks
// to per-sample alternating order. Single-channel layouts are a no-op.
func (x *Interleaver) Interleave(layout format.ChannelLayout, f format.SampleFormat, numSamples int, buf []byte) error {
	sampleSize, meta, numChan, totalBytes, err := sizes(layout, f, numSamples, buf)
	if err != nil {
		return fmt.Errorf("interleave: %w", err)
	}
	if numChan == 1 {
		return nil
	}

	payload := buf[meta:totalBytes]
	perChan := len(payload) / numChan / sampleSize // samples per channel

	scratch := make([]byte, len(payload))
	copy(scratch, payload)
	for ch := 0; ch < numChan; ch++ {
		block := scratch[ch*perChan*sampleSize:]
		for k := 0; k < perChan; k++ {
			src := block[k*sampleSize : (k+1)*sampleSize]
			dst := payload[(k*numChan+ch)*sampleSize:]
			copy(dst, src)
		}
	}
	return nil
}

// Deinterleave converts the payload from per-sample alternating order back to
// numChan contiguous per-channel blocks. Single-channel layouts are a no-op.
func (x *Interleaver) Deinterleave(layout format.ChannelLayout, f format.SampleFormat, numSamples int, buf []byte) error {
	sampleSize, meta, numChan, totalBytes, err := sizes(layout, f, numSamples, buf)
	if err != nil {
		return fmt.Errorf("deinterleave: %w", err)
	}
	if numChan == 1 {
		return nil
	}

	payload := buf[meta:totalBytes]
	perChan := len(payload) / numChan / sampleSize

	scratch := make([]byte, len(payload))
	copy(scratch, payload)
	for ch := 0; ch < numChan; ch++ {
		block := payload[ch*perChan*sampleSize:]
		for k := 0; k < perChan; k++ {
			src := scratch[(k*numChan+ch)*sampleSize : (k*numChan+ch+1)*sampleSize]
			copy(block[k*sampleSize:], src)
		}
	}
	return nil
}
