// Package serialization provides the .dnet model file format.
//
// A .dnet file stores named 2-D matrices (the network parameters) with a
// JSON header:
//
//	Format Structure:
//	  [0x00-0x03: Magic "DNET"]
//	  [0x04-0x07: Version (uint32 LE)]
//	  [0x08-0x0B: Flags (uint32 LE)]
//	  [0x0C-0x0F: Reserved]
//	  [0x10-0x17: Header size (uint64 LE)]
//	  [0x18-0x1F: Data size (uint64 LE)]
//	  [0x20-0x3F: SHA-256 of the data section]
//	  [Header: JSON metadata]
//	  [Matrix data: row-major, little-endian, 64-byte aligned]
//
// All multi-byte values, including matrix elements, are little-endian
// regardless of the host byte order.
//
// Example usage:
//
//	// Save
//	err := serialization.WriteFile("model.dnet", stateDict, names, serialization.Header{
//	    ModelType: "mlp",
//	})
//
//	// Load
//	reader, err := serialization.Open("model.dnet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//	stateDict, err := serialization.ReadStateDict[float64](reader)
package serialization
