package vm

import (
	"encoding/json"
	"fmt"
)

// LoadProgram decodes a JSON tape (§6: `[[entry, heap_size], [[addr,val],
// ...], function, function, ...]`) into a Program. It follows the loader
// policy of §4.2 exactly: it does not validate operand placement within a
// function body, only the shape of the top-level tape and the numeric
// ranges that distinguish Instruction/Callable/Primitive.
func LoadProgram(data []byte) (*Program, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTape, err)
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("%w: tape must have a bootstrap and heap entry", ErrMalformedTape)
	}

	var boot [2]int64
	if err := json.Unmarshal(raw[0], &boot); err != nil {
		return nil, fmt.Errorf("%w: bad bootstrap entry: %v", ErrMalformedTape, err)
	}

	var rawHeap [][2]int64
	if err := json.Unmarshal(raw[1], &rawHeap); err != nil {
		return nil, fmt.Errorf("%w: bad heap-seed entry: %v", ErrMalformedTape, err)
	}
	heapInit := make([]HeapSeed, len(rawHeap))
	for i, pair := range rawHeap {
		heapInit[i] = HeapSeed{Addr: uint32(pair[0]), Value: int32(pair[1])}
	}

	functions := make([]Function, 0, len(raw)-2)
	for _, fnRaw := range raw[2:] {
		var tuple []json.RawMessage
		if err := json.Unmarshal(fnRaw, &tuple); err != nil || len(tuple) != 5 {
			return nil, fmt.Errorf("%w: malformed function entry", ErrMalformedTape)
		}

		var id int64
		var name string
		var args, locals uint32
		if err := json.Unmarshal(tuple[0], &id); err != nil {
			return nil, fmt.Errorf("%w: function id: %v", ErrMalformedTape, err)
		}
		if err := json.Unmarshal(tuple[1], &name); err != nil {
			return nil, fmt.Errorf("%w: function name: %v", ErrMalformedTape, err)
		}
		if err := json.Unmarshal(tuple[2], &args); err != nil {
			return nil, fmt.Errorf("%w: function args: %v", ErrMalformedTape, err)
		}
		if err := json.Unmarshal(tuple[3], &locals); err != nil {
			return nil, fmt.Errorf("%w: function locals: %v", ErrMalformedTape, err)
		}

		var bodyArr []json.RawMessage
		if err := json.Unmarshal(tuple[4], &bodyArr); err != nil {
			return nil, fmt.Errorf("%w: function body: %v", ErrMalformedTape, err)
		}
		body, err := decodeFrameBody(bodyArr)
		if err != nil {
			return nil, err
		}

		functions = append(functions, Function{
			ID:     int32(id),
			Name:   name,
			Args:   args,
			Locals: locals,
			Body:   Frame{ID: int32(id), Name: name, Data: body},
		})
	}

	return &Program{
		EntryPoint: uint32(boot[0]),
		HeapSize:   uint32(boot[1]),
		HeapInit:   heapInit,
		Functions:  functions,
	}, nil
}

// decodeFrameBody translates one JSON body array into a slice of FrameData,
// recursing into nested arrays as child Frames.
func decodeFrameBody(elems []json.RawMessage) ([]FrameData, error) {
	out := make([]FrameData, 0, len(elems))
	for _, raw := range elems {
		fd, err := decodeFrameElement(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, fd)
	}
	return out, nil
}

func decodeFrameElement(raw json.RawMessage) (FrameData, error) {
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		n, err := num.Int64()
		if err != nil {
			return FrameData{}, fmt.Errorf("%w: non-integer tape element %s", ErrMalformedTape, num.String())
		}
		return decodeFrameNumber(int32(n)), nil
	}

	var sub []json.RawMessage
	if err := json.Unmarshal(raw, &sub); err != nil {
		return FrameData{}, fmt.Errorf("%w: tape element is neither number nor array", ErrMalformedTape)
	}
	body, err := decodeFrameBody(sub)
	if err != nil {
		return FrameData{}, err
	}
	return frameData(&Frame{Data: body}), nil
}

// decodeFrameNumber applies the §4.2 policy for a bare JSON number.
func decodeFrameNumber(n int32) FrameData {
	switch {
	case ValidNativeID(n):
		return nativeData(NativeID(n))
	case ValidOpcode(n):
		return instructionData(Opcode(n))
	default:
		return primitiveData(n)
	}
}
