package serial

import (
	"log/slog"
	"strings"

	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/bit"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
)

// cyclesPerByte is the length of an internally clocked transfer in M-cycles
// (8 bits at 8192 Hz).
const cyclesPerByte = 1024

// LogSink implements a serial port with nothing connected. Outgoing bytes are
// collected and logged as text lines, which is how test ROMs report results.
type LogSink struct {
	sb, sc         byte
	transferActive bool
	countdown      int
	logger         *slog.Logger

	// settings
	immediate bool

	line   []byte
	output strings.Builder
}

type LogSinkOption func(*LogSink)

// WithFixedTiming completes transfers after the real transfer time instead of
// on the next tick.
func WithFixedTiming() LogSinkOption { return func(s *LogSink) { s.immediate = false } }

// WithLogger routes the line output to a specific logger.
func WithLogger(l *slog.Logger) LogSinkOption { return func(s *LogSink) { s.logger = l } }

func NewLogSink(opts ...LogSinkOption) *LogSink {
	s := &LogSink{
		immediate: true,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

func (s *LogSink) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value & 0x83
		s.maybeStartTransfer()
	}
}

func (s *LogSink) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc | 0x7E
	}
	return 0xFF
}

// Tick advances an active transfer and requests the serial interrupt when it completes.
func (s *LogSink) Tick(cycles int, irq interrupt.Requester) {
	if !s.transferActive {
		return
	}
	s.countdown -= cycles
	if s.countdown <= 0 {
		s.completeTransfer(irq)
	}
}

func (s *LogSink) Reset() {
	s.sb = 0x00
	s.sc = 0x00
	s.transferActive = false
	s.countdown = 0
	s.line = s.line[:0]
	s.output.Reset()
}

// Output returns every byte sent so far.
func (s *LogSink) Output() string {
	return s.output.String()
}

func (s *LogSink) maybeStartTransfer() {
	if s.transferActive {
		return
	}
	// only internally clocked transfers make progress with nothing attached
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	s.output.WriteByte(b)
	if b == 0 || b == '\n' || b == '\r' {
		s.flushLine()
	} else {
		s.line = append(s.line, b)
	}

	s.transferActive = true
	s.countdown = 0
	if !s.immediate {
		s.countdown = cyclesPerByte
	}
}

func (s *LogSink) flushLine() {
	if len(s.line) == 0 {
		return
	}
	s.logger.Info("serial", "line", string(s.line))
	s.line = s.line[:0]
}

func (s *LogSink) completeTransfer(irq interrupt.Requester) {
	s.transferActive = false
	s.countdown = 0
	s.sb = 0xFF
	s.sc = bit.Reset(7, s.sc)
	irq.Request(addr.SerialInterrupt)
}
