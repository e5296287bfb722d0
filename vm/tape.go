package vm

// FrameDataKind tags the closed union of elements that can appear in a
// frame's body, per the design note favoring one tagged union and a single
// dispatch table over an inheritance hierarchy of node types.
type FrameDataKind uint8

const (
	FDPrimitive FrameDataKind = iota
	FDInstruction
	FDCallable
	FDFrame
)

func (k FrameDataKind) String() string {
	switch k {
	case FDPrimitive:
		return "primitive"
	case FDInstruction:
		return "instruction"
	case FDCallable:
		return "callable"
	case FDFrame:
		return "frame"
	default:
		return "?"
	}
}

// FrameData is one element of a frame's body. Value carries the payload for
// Primitive (the literal), Instruction (the opcode number) and Callable (the
// native id); Child carries the nested frame for FDFrame.
type FrameData struct {
	Kind  FrameDataKind
	Value int32
	Child *Frame
}

func primitiveData(v int32) FrameData  { return FrameData{Kind: FDPrimitive, Value: v} }
func instructionData(op Opcode) FrameData {
	return FrameData{Kind: FDInstruction, Value: int32(op)}
}
func nativeData(id NativeID) FrameData {
	return FrameData{Kind: FDCallable, Value: int32(id)}
}
func frameData(f *Frame) FrameData { return FrameData{Kind: FDFrame, Child: f} }

// Frame is a node in the instruction tree: an ordered sequence of FrameData.
// Frames owned by Functions are templates; each activation evaluates the
// same Data slice from a fresh pc rather than mutating or cloning it, since
// Data is never written to at runtime.
type Frame struct {
	ID   int32
	Name string
	Data []FrameData
}

// Function is a top-level callable defined by the program's function table.
// Id equals the function's index in that table.
type Function struct {
	ID     int32
	Name   string
	Args   uint32
	Locals uint32
	Body   Frame
}

// Program is the fully loaded, immutable representation of a tape.
type Program struct {
	EntryPoint uint32
	HeapSize   uint32
	HeapInit   []HeapSeed
	Functions  []Function
}

// CallableKind distinguishes guest functions from host-provided natives.
type CallableKind uint8

const (
	CallGuest CallableKind = iota
	CallNative
)

// Callable is a resolved call target: either a guest Function (by table
// index) or a host Native (by negative id).
type Callable struct {
	Kind CallableKind
	ID   int32
}

// ResolveCallable turns a tape CALL operand's FrameData into a Callable. The
// decision is made on the operand's numeric value, not its loader-assigned
// Kind: a small non-negative function index can decode as FDInstruction
// (it falls in the opcode range too) under the §4.2 policy, so CALL must
// read the raw id rather than trust the tag.
func ResolveCallable(fd FrameData, numFuncs int) (Callable, error) {
	if fd.Kind == FDFrame {
		return Callable{}, ErrInvalidCallable
	}
	v := fd.Value
	if ValidNativeID(v) {
		return Callable{Kind: CallNative, ID: v}, nil
	}
	if v >= 0 && int(v) < numFuncs {
		return Callable{Kind: CallGuest, ID: v}, nil
	}
	return Callable{}, ErrInvalidCallable
}
