package vm

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Host is the abstract set of I/O, RNG, and timer capabilities the native
// function table needs. The VM holds one Host for its lifetime and never
// shares it across instances; swapping in a fake Host is how tests drive
// IREAD/SREAD without touching a real terminal.
type Host interface {
	// WriteOut appends s to the output sink.
	WriteOut(s string)
	// ReadLine performs a blocking line read.
	ReadLine() (string, error)
	// Random returns a uniform integer in [0, n).
	Random(n int32) int32
	// ScheduleTimer and CancelTimer are optional hooks; a no-op
	// implementation is conforming per §4.4's TIMER/STOPTIMER contract.
	ScheduleTimer(id int32, ms int32)
	CancelTimer(id int32)
}

// StdHost is the default Host: stdout/stdin wired to the process streams,
// plus an in-memory accumulation of everything written so a debugger or
// test can inspect it after the fact without a real terminal.
type StdHost struct {
	out    *bufio.Writer
	in     *bufio.Reader
	buf    strings.Builder
	rng    *rand.Rand
	timers map[int32]int32
}

// NewStdHost wires w/r as the output/input streams. The generator is seeded
// from seed alone, so every seed, 0 included, yields the same RANDOM
// sequence on every run.
func NewStdHost(w io.Writer, r io.Reader, seed uint64) *StdHost {
	return &StdHost{
		out:    bufio.NewWriter(w),
		in:     bufio.NewReader(r),
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		timers: make(map[int32]int32),
	}
}

func (h *StdHost) WriteOut(s string) {
	h.buf.WriteString(s)
	h.out.WriteString(s)
	h.out.Flush()
}

func (h *StdHost) ReadLine() (string, error) {
	line, err := h.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%w: %v", ErrNativeIOError, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (h *StdHost) Random(n int32) int32 {
	if n <= 0 {
		return 0
	}
	return int32(h.rng.IntN(int(n)))
}

func (h *StdHost) ScheduleTimer(id int32, ms int32) { h.timers[id] = ms }
func (h *StdHost) CancelTimer(id int32)             { delete(h.timers, id) }

// Stdout returns everything written through WriteOut so far.
func (h *StdHost) Stdout() string { return h.buf.String() }

// parseInt is a small helper natives use to implement IREAD; kept here
// rather than importing strconv at every call site.
func parseInt(s string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNativeIOError, err)
	}
	return int32(v), nil
}
