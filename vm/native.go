package vm

import (
	"fmt"
	"strconv"
)

// callNative executes a single native function against mem/host, per §4.4's
// per-native contract table. Arguments are popped in the order they are
// listed in that table (the first-listed argument is the current stack
// top), and every native pushes exactly the result the table names — 0 when
// none is specified — so CALL's epilogue-free native path always leaves the
// stack balanced the same way a guest function's epilogue would.
func callNative(id NativeID, mem *Memory, host Host) error {
	switch id {
	case NativeIPrint:
		v, err := mem.Pop()
		if err != nil {
			return err
		}
		host.WriteOut(strconv.Itoa(int(v)))
		return mem.Push(0)

	case NativeSPrint:
		addr, err := mem.Pop()
		if err != nil {
			return err
		}
		host.WriteOut(mem.ReadString(uint32(addr)))
		return mem.Push(0)

	case NativeIRead:
		promptAddr, err := mem.Pop()
		if err != nil {
			return err
		}
		if promptAddr != -1 {
			host.WriteOut(mem.ReadString(uint32(promptAddr)))
		}
		line, err := host.ReadLine()
		if err != nil {
			return err
		}
		v, err := parseInt(line)
		if err != nil {
			return err
		}
		return mem.Push(v)

	case NativeSRead:
		addr, err := mem.Pop()
		if err != nil {
			return err
		}
		promptAddr, err := mem.Pop()
		if err != nil {
			return err
		}
		if promptAddr != -1 {
			host.WriteOut(mem.ReadString(uint32(promptAddr)))
		}
		line, err := host.ReadLine()
		if err != nil {
			return err
		}
		mem.WriteString(uint32(addr), line)
		return mem.Push(0)

	case NativeNL:
		host.WriteOut("\n")
		return mem.Push(0)

	case NativeRandom:
		n, err := mem.Pop()
		if err != nil {
			return err
		}
		return mem.Push(host.Random(n))

	case NativeTimer:
		ms, err := mem.Pop()
		if err != nil {
			return err
		}
		id, err := mem.Pop()
		if err != nil {
			return err
		}
		host.ScheduleTimer(id, ms)
		return mem.Push(0)

	case NativeStopTimer:
		_, err := mem.Pop() // time, unused beyond stack balance
		if err != nil {
			return err
		}
		id, err := mem.Pop()
		if err != nil {
			return err
		}
		host.CancelTimer(id)
		return mem.Push(0)

	case NativeAlloc:
		n, err := mem.Pop()
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: negative alloc size", ErrHeapOverflow)
		}
		addr, err := mem.Alloc(uint32(n))
		if err != nil {
			return err
		}
		return mem.Push(int32(addr))

	case NativeFree:
		// The bump allocator never reclaims space; FREE exists in the
		// tape vocabulary for source compatibility and is accepted as a
		// no-op, matching the heap's documented grow-only contract.
		if _, err := mem.Pop(); err != nil {
			return err
		}
		return mem.Push(0)

	case NativeI2S:
		value, err := mem.Pop()
		if err != nil {
			return err
		}
		addr, err := mem.Pop()
		if err != nil {
			return err
		}
		mem.WriteString(uint32(addr), strconv.Itoa(int(value)))
		return mem.Push(0)

	default:
		return ErrInvalidCallable
	}
}
