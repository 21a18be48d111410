package logmap

// ProjectBytes keeps the low-order byte of every value: one output byte per
// input value, the upper seven bytes dropped. The projection is lossy and has
// no inverse; it is not a serialization of the full int64.
//
// TODO(compat): decide with host callers whether a full-width little-endian
// encoding should be offered next to this one.
func ProjectBytes(values []int64) []byte {
	out := make([]byte, len(values))
	for i, v := range values {
		out[i] = byte(v)
	}
	return out
}
