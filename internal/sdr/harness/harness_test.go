package harness

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	harnesserr "github.com/sdrlab/go-interleave/internal/errors"
	"github.com/sdrlab/go-interleave/internal/sdr/codec"
	"github.com/sdrlab/go-interleave/internal/sdr/format"
)

func standardSuite(numSamples int) []Scenario {
	return []Scenario{
		{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11, NumSamples: numSamples},
		{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11Meta, NumSamples: numSamples},
		{Rx: format.RxX2, Tx: format.TxX2, Format: format.SC16Q11, NumSamples: numSamples},
		{Rx: format.RxX2, Tx: format.TxX2, Format: format.SC16Q11Meta, NumSamples: numSamples},
	}
}

func TestRunStandardSuite(t *testing.T) {
	r := New(codec.New(), WithQuiet(true), WithDumpWriter(&bytes.Buffer{}))
	assert.NoError(t, r.Run(standardSuite(16384)))
}

func TestPerChannelStrideCorrectness(t *testing.T) {
	// The canonical MIMO case: 2 channels, 16384 samples, no metadata.
	r := New(codec.New(), WithQuiet(true), WithDumpWriter(&bytes.Buffer{}))
	s := Scenario{Rx: format.RxX2, Tx: format.TxX2, Format: format.SC16Q11, NumSamples: 16384}
	assert.NoError(t, r.RunScenario(s))
}

func TestIncompatibleLayouts(t *testing.T) {
	mockCodec := new(MockCodec)
	r := New(mockCodec, WithQuiet(true))

	s := Scenario{Rx: format.RxX1, Tx: format.TxX2, Format: format.SC16Q11, NumSamples: 64}
	err := r.RunScenario(s)
	require.Error(t, err)

	var le *harnesserr.LayoutError
	assert.ErrorAs(t, err, &le)
	mockCodec.AssertNotCalled(t, "Interleave", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSizeInvariant(t *testing.T) {
	mockCodec := new(MockCodec)
	r := New(mockCodec, WithQuiet(true))

	// 2 samples of 4 bytes = 8 bytes, smaller than the 16-byte header.
	err := r.RunScenario(Scenario{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11Meta, NumSamples: 2})
	require.Error(t, err)
	var se *harnesserr.SizeError
	assert.ErrorAs(t, err, &se)
	mockCodec.AssertNotCalled(t, "Interleave", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSizeBoundaryEqualityAllowed(t *testing.T) {
	// totalBytes == metadataBytes exactly: equality must pass, only < is fatal.
	r := New(codec.New(), WithQuiet(true))
	err := r.RunScenario(Scenario{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11Meta, NumSamples: 4})
	assert.NoError(t, err)
}

func TestTransformFailureAbortsScenario(t *testing.T) {
	mockCodec := new(MockCodec)
	mockCodec.On("Interleave", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(harnesserr.NewTransformError("interleave", codec.StatusInval, nil))

	r := New(mockCodec, WithQuiet(true))
	err := r.RunScenario(Scenario{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11, NumSamples: 64})
	require.Error(t, err)

	var te *harnesserr.TransformError
	assert.ErrorAs(t, err, &te)
	assert.Equal(t, codec.StatusInval, te.Code)
	mockCodec.AssertNotCalled(t, "Deinterleave", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunAbortsAtFirstFailure(t *testing.T) {
	// A no-op codec passes single-channel scenarios; fail the second one and
	// confirm scenarios 3 and 4 never execute.
	mockCodec := new(MockCodec)
	mockCodec.On("Interleave", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()
	mockCodec.On("Deinterleave", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()
	mockCodec.On("Interleave", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(harnesserr.NewTransformError("interleave", codec.StatusUnsupported, nil)).Once()

	r := New(mockCodec, WithQuiet(true))
	scenarios := []Scenario{
		{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11, NumSamples: 64},
		{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11, NumSamples: 64},
		{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11, NumSamples: 64},
		{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11, NumSamples: 64},
	}

	err := r.Run(scenarios)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario 2 of 4")
	mockCodec.AssertNumberOfCalls(t, "Interleave", 2)
	mockCodec.AssertNumberOfCalls(t, "Deinterleave", 1)
}

func TestVerifyFailureReportsAllMismatches(t *testing.T) {
	// Corrupt exactly three payload words after a correct interleave: the
	// single-channel no-op check must flag all three, not just the first.
	faulty := &corruptingCodec{inner: codec.New(), corruptWords: []int{1, 5, 9}}
	r := New(faulty, WithQuiet(true))

	err := r.RunScenario(Scenario{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11, NumSamples: 64})
	require.Error(t, err)
	require.True(t, harnesserr.IsVerifyError(err))

	var ve *harnesserr.VerifyError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 3, ve.Mismatches)
}

func TestVerboseDumpOutput(t *testing.T) {
	var dumps bytes.Buffer
	r := New(codec.New(), WithVerbose(true), WithQuiet(true), WithDumpWriter(&dumps))

	err := r.RunScenario(Scenario{Rx: format.RxX2, Tx: format.TxX2, Format: format.SC16Q11, NumSamples: 64})
	require.NoError(t, err)
	assert.NotZero(t, dumps.Len())
}

func TestDefaultVerbosityDumpsBufferEnds(t *testing.T) {
	var dumps bytes.Buffer
	r := New(codec.New(), WithDumpWriter(&dumps))

	err := r.RunScenario(Scenario{Rx: format.RxX2, Tx: format.TxX2, Format: format.SC16Q11, NumSamples: 16384})
	require.NoError(t, err)
	assert.Contains(t, dumps.String(), "memory dump")
	assert.Contains(t, dumps.String(), "...")
}

func TestMetadataOnlyBufferStillDumps(t *testing.T) {
	// A buffer that is all header and no payload: the per-channel pass has
	// nothing to verify, but the memory dump must still appear.
	var dumps bytes.Buffer
	r := New(codec.New(), WithDumpWriter(&dumps))

	err := r.RunScenario(Scenario{Rx: format.RxX2, Tx: format.TxX2, Format: format.SC16Q11Meta, NumSamples: 4})
	require.NoError(t, err)
	assert.Contains(t, dumps.String(), "memory dump, 16 bytes")
}

func TestUnknownFormatFailsSizing(t *testing.T) {
	r := New(codec.New(), WithQuiet(true))
	err := r.RunScenario(Scenario{Rx: format.RxX1, Tx: format.TxX1, Format: format.SampleFormat(42), NumSamples: 64})
	require.Error(t, err)
	var fe *harnesserr.FormatError
	assert.ErrorAs(t, err, &fe)
	assert.True(t, strings.Contains(err.Error(), "sizing"))
}

func TestZeroSamplesTriviallyPasses(t *testing.T) {
	r := New(codec.New(), WithQuiet(true))
	err := r.RunScenario(Scenario{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11, NumSamples: 0})
	assert.NoError(t, err)
}

func TestScenarioString(t *testing.T) {
	s := Scenario{Rx: format.RxX2, Tx: format.TxX2, Format: format.SC16Q11Meta, NumSamples: 16384}
	assert.Equal(t, "rx=rx_x2 tx=tx_x2 format=sc16q11_meta num_samples=16384", s.String())
}

func TestRunnerWithFailingDeinterleave(t *testing.T) {
	mockCodec := new(MockCodec)
	mockCodec.On("Interleave", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockCodec.On("Deinterleave", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("device gone"))

	r := New(mockCodec, WithQuiet(true))
	err := r.RunScenario(Scenario{Rx: format.RxX1, Tx: format.TxX1, Format: format.SC16Q11, NumSamples: 64})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deinterleave transform")
}
