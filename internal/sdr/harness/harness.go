// Package harness drives interleaver verification scenarios. Each scenario
// owns one pattern-filled sample buffer, pushes it through the codec's
// interleave and deinterleave transforms, and checks the expected counting
// sequence at every stage: the untouched metadata header, the single-channel
// no-op law, every channel's strided sub-sequence in the interleaved buffer,
// and the full round-trip recovery.
package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sdrlab/go-interleave/internal/bufpool"
	harnesserr "github.com/sdrlab/go-interleave/internal/errors"
	"github.com/sdrlab/go-interleave/internal/logger"
	"github.com/sdrlab/go-interleave/internal/sdr/codec"
	"github.com/sdrlab/go-interleave/internal/sdr/format"
	"github.com/sdrlab/go-interleave/internal/sdr/hexdump"
	"github.com/sdrlab/go-interleave/internal/sdr/pattern"
)

// edgeDumpBytes is how much of each end of the interleaved buffer is dumped
// when running at normal verbosity.
const edgeDumpBytes = 48

// Scenario is one verification case: interleave with the tx layout, check,
// deinterleave with the rx layout, check again. Rx and tx must resolve to the
// same channel count.
type Scenario struct {
	Rx         format.ChannelLayout
	Tx         format.ChannelLayout
	Format     format.SampleFormat
	NumSamples int
}

func (s Scenario) String() string {
	return fmt.Sprintf("rx=%s tx=%s format=%s num_samples=%d", s.Rx, s.Tx, s.Format, s.NumSamples)
}

// Runner executes scenarios sequentially, stopping at the first failure.
type Runner struct {
	codec   codec.Codec
	log     *slog.Logger
	dumpW   io.Writer
	pool    *bufpool.Pool
	verbose bool
	quiet   bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithVerbose enables per-word diagnostics and full buffer dumps.
func WithVerbose(v bool) Option { return func(r *Runner) { r.verbose = v } }

// WithQuiet suppresses info-level narration. Failures still surface.
func WithQuiet(q bool) Option { return func(r *Runner) { r.quiet = q } }

// WithLogger overrides the logger (intended for tests).
func WithLogger(l *slog.Logger) Option { return func(r *Runner) { r.log = l } }

// WithDumpWriter redirects diagnostic dumps (intended for tests).
func WithDumpWriter(w io.Writer) Option { return func(r *Runner) { r.dumpW = w } }

// WithPool overrides the buffer pool.
func WithPool(p *bufpool.Pool) Option { return func(r *Runner) { r.pool = p } }

// New creates a Runner around the codec under test.
func New(c codec.Codec, opts ...Option) *Runner {
	r := &Runner{
		codec: c,
		log:   logger.Logger().With("component", "harness"),
		dumpW: os.Stdout,
		pool:  bufpool.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the scenarios in order. The first failure aborts the run and
// is returned with the scenario's position; later scenarios do not execute.
func (r *Runner) Run(scenarios []Scenario) error {
	for i, s := range scenarios {
		if err := r.RunScenario(s); err != nil {
			return fmt.Errorf("scenario %d of %d (%s): %w", i+1, len(scenarios), s, err)
		}
	}
	return nil
}

// RunScenario executes one scenario end to end. The sample buffer is released
// on every exit path.
func (r *Runner) RunScenario(s Scenario) error {
	log := logger.WithScenario(r.log, s.Rx.String(), s.Tx.String(), s.Format.String(), s.NumSamples)

	// Sizing: resolve sample/metadata/channel dimensions and check the
	// scenario preconditions before any buffer exists.
	sampleSize, err := s.Format.BytesPerSample()
	if err != nil {
		return fmt.Errorf("sizing: %w", err)
	}
	meta, err := s.Format.MetadataBytes()
	if err != nil {
		return fmt.Errorf("sizing: %w", err)
	}
	numChan, err := s.Rx.Channels()
	if err != nil {
		return fmt.Errorf("sizing: %w", err)
	}
	txChan, err := s.Tx.Channels()
	if err != nil {
		return fmt.Errorf("sizing: %w", err)
	}
	if numChan != txChan {
		return harnesserr.NewLayoutError(
			fmt.Sprintf("incompatible channel layouts: %s (%d) and %s (%d)", s.Rx, numChan, s.Tx, txChan), nil)
	}
	totalBytes := sampleSize * s.NumSamples
	if totalBytes < meta {
		return harnesserr.NewSizeError(
			fmt.Sprintf("buffer (%d bytes) cannot be smaller than metadata header (%d bytes)", totalBytes, meta), nil)
	}
	if numChan < 1 {
		return harnesserr.NewSizeError(fmt.Sprintf("channel count %d cannot be less than 1", numChan), nil)
	}

	r.infof(log, "beginning test", "total_bytes", totalBytes, "num_chan", numChan)

	// Created: the scenario owns buf until it returns, success or not.
	buf := r.pool.Get(totalBytes)
	if buf == nil {
		buf = []byte{} // zero samples: every check degenerates to zero iterations
	}
	defer r.pool.Put(buf)
	pattern.Fill(buf)
	r.infof(log, "created test buffer")
	r.dump(buf)

	checker := &pattern.Checker{Log: log, Verbose: r.verbose}

	// Interleaved.
	if err := r.codec.Interleave(s.Tx, s.Format, s.NumSamples, buf); err != nil {
		return fmt.Errorf("interleave transform: %w", err)
	}
	r.dump(buf)

	// MetadataChecked: interleaving must not touch the header region.
	if meta > 0 {
		r.infof(log, "checking metadata", "bytes", meta)
		r.dump(buf[:meta])
		res, err := checker.Check(buf[:meta], meta, sampleSize, 1, 0)
		if err != nil {
			return fmt.Errorf("check metadata: %w", err)
		}
		if !res.OK() {
			return harnesserr.NewVerifyError("metadata region modified by interleave", len(res.Mismatches), nil)
		}
	}

	// SingleChannelChecked: interleaving one channel must be a no-op.
	if numChan == 1 {
		r.infof(log, "not a MIMO layout, verifying no interleaving occurred")
		res, err := checker.Check(buf, totalBytes, sampleSize, 1, 0)
		if err != nil {
			return fmt.Errorf("check single channel: %w", err)
		}
		if !res.OK() {
			return harnesserr.NewVerifyError("single-channel interleave was not a no-op", len(res.Mismatches), nil)
		}
	}

	// PerChannelChecked: each channel's samples must appear at its own
	// offset, strided by the channel count, carrying the counting sequence
	// from its original block position.
	payloadLen := totalBytes - meta
	for i := 0; i < numChan; i++ {
		if i == 0 && !r.verbose && !r.quiet {
			fmt.Fprintf(r.dumpW, "memory dump, %d bytes:\n", totalBytes)
			hexdump.DumpEnds(r.dumpW, buf, edgeDumpBytes)
		}

		start := uint16((meta + i*(payloadLen/numChan)) / 2)
		chLog := logger.WithChannel(log, i)
		r.infof(chLog, "checking interleaved data",
			"offset", meta+sampleSize*i, "stride", numChan, "start", fmt.Sprintf("%04x", start))

		off := meta + sampleSize*i
		if off > len(buf) {
			off = len(buf)
		}
		chChecker := &pattern.Checker{Log: chLog, Verbose: r.verbose}
		res, err := chChecker.Check(buf[off:], payloadLen, sampleSize, numChan, start)
		if err != nil {
			return fmt.Errorf("check channel %d: %w", i, err)
		}
		if !res.OK() {
			return harnesserr.NewVerifyError(fmt.Sprintf("interleaved data for channel %d", i), len(res.Mismatches), nil)
		}
	}

	// Deinterleaved.
	if err := r.codec.Deinterleave(s.Rx, s.Format, s.NumSamples, buf); err != nil {
		return fmt.Errorf("deinterleave transform: %w", err)
	}
	r.dump(buf)

	// RoundTripChecked: deinterleave must exactly invert interleave.
	r.infof(log, "checking deinterleaved data")
	res, err := checker.Check(buf, totalBytes, sampleSize, 1, 0)
	if err != nil {
		return fmt.Errorf("check round trip: %w", err)
	}
	if !res.OK() {
		return harnesserr.NewVerifyError("round trip did not recover the original pattern", len(res.Mismatches), nil)
	}

	r.infof(log, "scenario passed")
	return nil
}

// infof logs narration unless the runner is quiet.
func (r *Runner) infof(log *slog.Logger, msg string, args ...any) {
	if r.quiet {
		return
	}
	log.Info(msg, args...)
}

// dump writes a full buffer dump in verbose mode.
func (r *Runner) dump(buf []byte) {
	if !r.verbose {
		return
	}
	hexdump.Dump(r.dumpW, buf, hexdump.DefaultColumns)
}
