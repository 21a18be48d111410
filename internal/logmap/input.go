package logmap

import apperrors "github.com/agbru/logmap/internal/errors"

// Input is one of the accepted seed shapes: Range, List or RawBytes.
type Input interface {
	// Len reports the number of seeds the input expands to.
	Len() int
	isInput()
}

// Range is an inclusive ascending range of seeds. It is empty when Last < First.
type Range struct {
	First int64 `json:"first"`
	Last  int64 `json:"last"`
}

// List is an explicit ordered seed list.
type List []int64

// RawBytes is a byte buffer; each byte, zero-extended, is one seed.
type RawBytes []byte

func (Range) isInput()    {}
func (List) isInput()     {}
func (RawBytes) isInput() {}

// MaxRangeLen is the longest range Normalize expands: 2 GiB of seeds.
const MaxRangeLen = 1 << 28

// Len returns Last-First+1, 0 for an empty range, or -1 when the range is
// longer than MaxRangeLen.
func (r Range) Len() int {
	if r.Last < r.First {
		return 0
	}
	span := uint64(r.Last) - uint64(r.First)
	if span >= MaxRangeLen {
		return -1
	}
	return int(span) + 1
}

func (l List) Len() int     { return len(l) }
func (b RawBytes) Len() int { return len(b) }

// Normalize expands in into the canonical seed sequence. The result is always
// a fresh slice that the caller owns.
func Normalize(in Input) ([]int64, error) {
	switch v := in.(type) {
	case Range:
		n := v.Len()
		if n < 0 {
			return nil, apperrors.NewInvalidInputError("range %d..%d exceeds %d seeds", v.First, v.Last, MaxRangeLen)
		}
		out := make([]int64, n)
		for i := range out {
			out[i] = v.First + int64(i)
		}
		return out, nil
	case List:
		out := make([]int64, len(v))
		copy(out, v)
		return out, nil
	case RawBytes:
		out := make([]int64, len(v))
		for i, b := range v {
			out[i] = int64(b)
		}
		return out, nil
	case nil:
		return nil, apperrors.NewInvalidInputError("no input")
	default:
		return nil, apperrors.NewInvalidInputError("unsupported input %T", in)
	}
}
