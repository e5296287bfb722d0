package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/marvelousanything/tvm-go/internal/debugger"
	"github.com/marvelousanything/tvm-go/internal/tlog"
	"github.com/marvelousanything/tvm-go/vm"
)

var log = tlog.Default().Module("cli")

func main() {
	debugMode := flag.Bool("debug", false, "single-step through the tape instead of running it to completion")
	heapOverride := flag.Uint("heap", 0, "override the tape's declared heap size (0 uses the tape's own value)")
	seed := flag.Uint64("seed", 0, "seed for the RANDOM native's generator")
	maxTicks := flag.Uint64("max-ticks", 0, "abort after this many ticks (0 disables the guard)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tvm [-debug] [-heap N] [-seed N] [-max-ticks N] <tape.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	prog, err := vm.LoadProgram(data)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	host := vm.NewStdHost(os.Stdout, os.Stdin, *seed)
	machine := vm.New(vm.Config{
		Host:     host,
		HeapSize: uint32(*heapOverride),
		RNGSeed:  *seed,
		MaxTicks: *maxTicks,
	})
	if err := machine.Load(prog); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := machine.Start(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if *debugMode {
		runDebug(machine)
		return
	}
	runToCompletion(machine)
}

func runToCompletion(m *vm.VM) {
	for !m.IsHalted() {
		if err := m.Tick(); err != nil {
			log.Error("tick failed", "err", err, "tick", m.Ticks())
			fmt.Println(err)
			return
		}
	}
	if f := m.Fault(); f != nil {
		fmt.Println(f)
	}
}

// runDebug is a single-step REPL: "n"/"next" single-steps one tick, "r"/
// "run" free-runs until a breakpoint or halt, "b <name>" toggles a
// breakpoint on a frame name, "state" prints the current state stack.
func runDebug(m *vm.VM) {
	fmt.Println("Commands:\n\tn or next: advance one tick\n\tr or run: run until breakpoint or halt\n\tb <frame>: toggle breakpoint on a frame name\n\tstate: print the current state stack\n\tq or quit: exit")

	bps := debugger.New()
	printState(m, bps)

	reader := bufio.NewReader(os.Stdin)
	running := false
	for !m.IsHalted() {
		line := ""
		if !running {
			fmt.Print("\n-> ")
			line, _ = reader.ReadString('\n')
			line = strings.ToLower(strings.TrimSpace(line))
		} else if atBreakpoint(m, bps) {
			fmt.Println("breakpoint")
			printState(m, bps)
			running = false
			continue
		}

		switch {
		case running, line == "n", line == "next":
			if err := m.Tick(); err != nil {
				fmt.Println(err)
				return
			}
			if !running {
				printState(m, bps)
			}
		case line == "r" || line == "run":
			running = true
		case line == "state":
			printState(m, bps)
		case line == "q" || line == "quit":
			return
		case strings.HasPrefix(line, "b "):
			name := strings.TrimSpace(strings.TrimPrefix(line, "b"))
			if bps.Toggle(name) {
				fmt.Println("breakpoint set on", name)
			} else {
				fmt.Println("breakpoint cleared on", name)
			}
		default:
			fmt.Println("unknown command")
		}
	}
	printState(m, bps)
	if f := m.Fault(); f != nil {
		fmt.Println(f)
	}
}

func atBreakpoint(m *vm.VM, bps *debugger.Breakpoints) bool {
	stack := m.StateStack()
	if len(stack) == 0 {
		return false
	}
	return bps.Has(stack[0].FrameName)
}

func printState(m *vm.VM, bps *debugger.Breakpoints) {
	fmt.Printf("tick=%d sp=%d fp=%d\n", m.Ticks(), m.Memory().SP(), m.Memory().FP())
	for i, f := range m.StateStack() {
		fmt.Printf("  [%d] %s %s pc=%s\n", i, f.Kind, f.FrameName, strconv.Itoa(f.PC))
	}
	if names := bps.List(); len(names) > 0 {
		fmt.Println("  breakpoints:", strings.Join(names, ", "))
	}
}
