// Package vm implements the TVM core: a flat-memory, frame-tree, tick-driven
// stack machine loaded from a JSON tape.
package vm

import (
	"fmt"
	"strings"
)

// Config bundles the knobs §6's public API leaves to the embedder: which
// Host backs native I/O/RNG/timers, and an optional heap override for
// tests that want to force HeapOverflow without crafting a huge tape.
type Config struct {
	Host     Host
	HeapSize uint32 // 0 uses the program's own declared heap_size
	RNGSeed  uint64
	MaxTicks uint64 // 0 disables the guard; a debugger-side safety net, not part of the core contract
}

// VM is the public surface described in §6: load/start/reset/tick/pause/
// resume/is_halted plus read-only accessors for memory, the state stack,
// stdout, and the tick count.
type VM struct {
	cfg  Config
	host Host
	mem  *Memory
	prog *Program
	eng  *engine

	paused bool
}

// New constructs an unloaded VM. Load must be called before Start.
func New(cfg Config) *VM {
	return &VM{cfg: cfg, host: cfg.Host}
}

// Load installs a Program, allocating the fixed memory array once. Calling
// Load again replaces the program and requires a fresh Start.
func (v *VM) Load(prog *Program) error {
	if prog == nil {
		return fmt.Errorf("%w: nil program", ErrMalformedTape)
	}
	heapSize := prog.HeapSize
	if v.cfg.HeapSize != 0 {
		heapSize = v.cfg.HeapSize
	}
	if heapSize >= MemSize {
		return ErrHeapOverflow
	}
	v.prog = prog
	v.mem = NewMemory(heapSize)
	if v.host == nil {
		v.host = NewStdHost(discardWriter{}, strings.NewReader(""), v.cfg.RNGSeed)
	}
	v.eng = newEngine(v.prog, v.mem, v.host)
	v.paused = false
	return nil
}

// Start resets memory/state and begins evaluating the entry function.
func (v *VM) Start() error {
	if v.eng == nil {
		return fmt.Errorf("%w: Start called before Load", ErrMalformedTape)
	}
	v.paused = false
	return v.eng.start()
}

// Reset re-seeds memory and re-enters the entry point. §6 lists reset and
// start as distinct operations but a program that has never been started
// has no other state to return to, so both share this implementation.
func (v *VM) Reset() error { return v.Start() }

// Tick advances the state machine by one unit of work. It is a no-op while
// paused, before Start, or after Halt. Once Config.MaxTicks ticks have run
// it does nothing and returns an error instead.
func (v *VM) Tick() error {
	if v.paused {
		return nil
	}
	if v.cfg.MaxTicks != 0 && v.eng.ticks >= v.cfg.MaxTicks {
		return fmt.Errorf("tvm: tick limit of %d reached", v.cfg.MaxTicks)
	}
	return v.eng.tick()
}

// Pause is idempotent; it only takes effect between ticks, never
// mid-instruction, since Tick always completes one whole step before
// returning.
func (v *VM) Pause() { v.paused = true }

// Resume clears Pause, letting the next Tick continue from the saved state.
func (v *VM) Resume() { v.paused = false }

// IsPaused reports whether Tick is currently suppressed by Pause.
func (v *VM) IsPaused() bool { return v.paused }

// IsHalted reports whether the current state is Halt.
func (v *VM) IsHalted() bool { return v.eng != nil && v.eng.isHalted() }

// IsWaiting reports whether Start has not yet been called.
func (v *VM) IsWaiting() bool { return v.eng != nil && v.eng.isWaiting() }

// Ticks returns the number of ticks executed since the last Start.
func (v *VM) Ticks() uint64 {
	if v.eng == nil {
		return 0
	}
	return v.eng.ticks
}

// Fault returns the error that halted the VM, or nil if it is still
// running or never failed.
func (v *VM) Fault() *Fault {
	if v.eng == nil {
		return nil
	}
	return v.eng.fault
}

// Memory exposes the live Memory for read-only inspection; callers must
// not mutate cells through this handle while a tick is in progress.
func (v *VM) Memory() *Memory { return v.mem }

// Stdout returns everything natives have written so far, when the
// configured Host is a *StdHost (the common case for tests and the CLI).
func (v *VM) Stdout() string {
	if sh, ok := v.host.(*StdHost); ok {
		return sh.Stdout()
	}
	return ""
}

// StateFrame is one read-only entry of a state-stack trace, from innermost
// (index 0, the currently ticking state) to outermost.
type StateFrame struct {
	Kind      string
	FrameName string
	PC        int
}

// StateStack walks the current state chain from cur outward, for a
// debugger's call-stack view.
func (v *VM) StateStack() []StateFrame {
	if v.eng == nil {
		return nil
	}
	var out []StateFrame
	for n := v.eng.cur; n != nil; n = n.parent {
		name := ""
		if n.frame != nil {
			name = n.frame.Name
		} else if n.fn != nil {
			name = n.fn.Name
		}
		out = append(out, StateFrame{Kind: n.kind.String(), FrameName: name, PC: n.pc})
	}
	return out
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
