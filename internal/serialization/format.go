package serialization

import (
	"encoding/binary"
	"time"
)

// Format constants.
const (
	MagicBytes      = "DNET"
	FormatVersion   = 1
	FixedHeaderSize = 64   // 0x40 bytes
	HeaderAlignment = 64   // Matrix data starts on a 64-byte boundary
	ChecksumSize    = 32   // SHA-256
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
)

// Flags for the .dnet format.
const (
	FlagHasMetadata uint32 = 1 << 0 // custom metadata included
	FlagHasTraining uint32 = 1 << 1 // training state (epoch, loss) included
)

// Header is the JSON header of a .dnet file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	ModelID       string            `json:"model_id"`            // Random UUID assigned at write time
	ModelType     string            `json:"model_type"`          // e.g. "mlp-sigmoid"
	CreatedAt     time.Time         `json:"created_at"`          // When the file was written
	Topology      []int             `json:"topology,omitempty"`  // Layer widths, input first
	LearningRate  float64           `json:"learning_rate"`       // Learning rate at save time
	Training      *TrainingMeta     `json:"training,omitempty"`  // Training progress (optional)
	Matrices      []MatrixMeta      `json:"matrices"`            // Matrix layout in the data section
	Metadata      map[string]string `json:"metadata,omitempty"`  // Custom metadata
}

// TrainingMeta records how far training had progressed.
type TrainingMeta struct {
	Epoch int     `json:"epoch"`
	Loss  float64 `json:"loss"`
}

// MatrixMeta describes one matrix in the data section.
type MatrixMeta struct {
	Name   string `json:"name"`   // Parameter name (e.g., "weights_input_hidden")
	DType  string `json:"dtype"`  // "float32" or "float64"
	Rows   int    `json:"rows"`   // Row count
	Cols   int    `json:"cols"`   // Column count
	Offset int64  `json:"offset"` // Bytes from the start of the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// fixedHeader is the decoded 64-byte prefix.
type fixedHeader struct {
	version    uint32
	flags      uint32
	headerSize uint64
	dataSize   uint64
	checksum   [ChecksumSize]byte
}

func (h *fixedHeader) encode() []byte {
	buf := make([]byte, FixedHeaderSize)
	copy(buf[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(buf[4:8], h.version)
	binary.LittleEndian.PutUint32(buf[8:12], h.flags)
	// 0x0C-0x0F reserved.
	binary.LittleEndian.PutUint64(buf[16:24], h.headerSize)
	binary.LittleEndian.PutUint64(buf[24:32], h.dataSize)
	copy(buf[ChecksumOffset:ChecksumOffset+ChecksumSize], h.checksum[:])
	return buf
}

func decodeFixedHeader(buf []byte) (fixedHeader, error) {
	var h fixedHeader
	if string(buf[0:4]) != MagicBytes {
		return h, ErrInvalidMagic
	}
	h.version = binary.LittleEndian.Uint32(buf[4:8])
	h.flags = binary.LittleEndian.Uint32(buf[8:12])
	h.headerSize = binary.LittleEndian.Uint64(buf[16:24])
	h.dataSize = binary.LittleEndian.Uint64(buf[24:32])
	copy(h.checksum[:], buf[ChecksumOffset:ChecksumOffset+ChecksumSize])
	return h, nil
}

// dataOffset returns where the data section starts for a JSON header of headerSize bytes.
func dataOffset(headerSize int64) int64 {
	pos := int64(FixedHeaderSize) + headerSize
	padding := (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment
	return pos + padding
}
