package matrix

// Float is a constraint for supported matrix element types.
type Float interface {
	~float32 | ~float64
}

// DataType represents runtime type information for matrix elements.
type DataType int

// Supported element types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParseDataType converts a name produced by DataType.String back to a DataType.
func ParseDataType(s string) (DataType, bool) {
	switch s {
	case "float32":
		return Float32, true
	case "float64":
		return Float64, true
	default:
		return 0, false
	}
}

// DTypeOf infers the DataType of the element type T.
func DTypeOf[T Float]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	}
	// Named types fall back on their width.
	var probe T = 1 + 1e-10
	if float64(probe) == 1 {
		return Float32
	}
	return Float64
}
