package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadProgramBasicShape(t *testing.T) {
	tape := `[
		[0, 64],
		[[2, 99]],
		[0, "main", 0, 1, [1, 1000, 2, -101, 8]]
	]`
	prog, err := LoadProgram([]byte(tape))
	require.NoError(t, err)
	require.Equal(t, uint32(0), prog.EntryPoint)
	require.Equal(t, uint32(64), prog.HeapSize)
	require.Equal(t, []HeapSeed{{Addr: 2, Value: 99}}, prog.HeapInit)
	require.Len(t, prog.Functions, 1)

	fn := prog.Functions[0]
	require.Equal(t, "main", fn.Name)
	require.EqualValues(t, 0, fn.Args)
	require.EqualValues(t, 1, fn.Locals)
	require.Len(t, fn.Body.Data, 5)
	require.Equal(t, FDInstruction, fn.Body.Data[0].Kind) // PUSH
	require.Equal(t, FDPrimitive, fn.Body.Data[1].Kind)   // 1000 falls outside both the opcode and native ranges
	require.Equal(t, FDInstruction, fn.Body.Data[2].Kind) // 2 == FETCH
	require.Equal(t, FDCallable, fn.Body.Data[3].Kind)    // -101 == IPRINT
	require.Equal(t, FDInstruction, fn.Body.Data[4].Kind) // 8 == CALL
}

func TestLoadProgramNestedFrame(t *testing.T) {
	tape := `[[0,0],[], [0,"main",0,0,[5,[6]]]]`
	prog, err := LoadProgram([]byte(tape))
	require.NoError(t, err)
	body := prog.Functions[0].Body.Data
	require.Len(t, body, 2)
	require.Equal(t, FDInstruction, body[0].Kind) // LOOP
	require.Equal(t, FDFrame, body[1].Kind)
	require.NotNil(t, body[1].Child)
	require.Len(t, body[1].Child.Data, 1)
	require.Equal(t, FDInstruction, body[1].Child.Data[0].Kind) // BREAK
}

func TestLoadProgramMalformedTapeShape(t *testing.T) {
	_, err := LoadProgram([]byte(`{"not": "an array"}`))
	require.ErrorIs(t, err, ErrMalformedTape)
}

func TestLoadProgramMalformedFunctionEntry(t *testing.T) {
	_, err := LoadProgram([]byte(`[[0,0],[],[0,"main",0]]`))
	require.ErrorIs(t, err, ErrMalformedTape)
}

func TestLoadProgramNoFunctions(t *testing.T) {
	_, err := LoadProgram([]byte(`[[0,0],[]]`))
	require.NoError(t, err) // bootstrap + empty heap-seed section is a valid, if empty, program
}
