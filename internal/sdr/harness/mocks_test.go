package harness

import (
	"github.com/stretchr/testify/mock"

	"github.com/sdrlab/go-interleave/internal/sdr/codec"
	"github.com/sdrlab/go-interleave/internal/sdr/format"
)

// MockCodec mocks codec.Codec
type MockCodec struct {
	mock.Mock
}

func (m *MockCodec) Interleave(layout format.ChannelLayout, f format.SampleFormat, numSamples int, buf []byte) error {
	args := m.Called(layout, f, numSamples, buf)
	return args.Error(0)
}

func (m *MockCodec) Deinterleave(layout format.ChannelLayout, f format.SampleFormat, numSamples int, buf []byte) error {
	args := m.Called(layout, f, numSamples, buf)
	return args.Error(0)
}

// corruptingCodec interleaves correctly, then flips bytes at the given
// payload word offsets so checks downstream of the transform must fail.
type corruptingCodec struct {
	inner        codec.Codec
	corruptWords []int
}

func (c *corruptingCodec) Interleave(layout format.ChannelLayout, f format.SampleFormat, numSamples int, buf []byte) error {
	if err := c.inner.Interleave(layout, f, numSamples, buf); err != nil {
		return err
	}
	for _, w := range c.corruptWords {
		buf[4*w] ^= 0xFF
	}
	return nil
}

func (c *corruptingCodec) Deinterleave(layout format.ChannelLayout, f format.SampleFormat, numSamples int, buf []byte) error {
	return c.inner.Deinterleave(layout, f, numSamples, buf)
}
