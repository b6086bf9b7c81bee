package network

import (
	"fmt"
	"io"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/serialization"
)

// ModelType identifies a Network in .dnet headers.
const ModelType = "mlp-sigmoid"

// SaveOptions carries optional header content for Save and Encode.
type SaveOptions struct {
	Training *serialization.TrainingMeta // Training progress (can be nil)
	Metadata map[string]string           // Custom metadata (can be nil)
}

func (n *Network[T]) fileHeader(opts SaveOptions) serialization.Header {
	return serialization.Header{
		ModelType:    ModelType,
		Topology:     []int{n.inputNodes, n.hiddenNodes, n.outputNodes},
		LearningRate: float64(n.learningRate),
		Training:     opts.Training,
		Metadata:     opts.Metadata,
	}
}

// Encode writes the network parameters and topology to w in .dnet format.
func Encode[T matrix.Float](n *Network[T], w io.Writer, opts SaveOptions) error {
	return serialization.Write(w, n.StateDict(), ParamNames, n.fileHeader(opts))
}

// Save writes the network to a .dnet file at path.
//
// Example:
//
//	net, _ := network.New[float64](784, 100, 10)
//	err := network.Save(net, "model.dnet", network.SaveOptions{})
func Save[T matrix.Float](n *Network[T], path string, opts SaveOptions) error {
	if err := serialization.WriteFile(path, n.StateDict(), ParamNames, n.fileHeader(opts)); err != nil {
		return fmt.Errorf("save network: %w", err)
	}
	return nil
}

// Load reads a .dnet file and builds a network from its topology,
// parameters and learning rate.
//
// Example:
//
//	net, header, err := network.Load[float64]("model.dnet")
func Load[T matrix.Float](path string) (*Network[T], serialization.Header, error) {
	reader, err := serialization.Open(path)
	if err != nil {
		return nil, serialization.Header{}, err
	}
	defer func() {
		_ = reader.Close()
	}()

	return decode[T](reader)
}

// Decode reads a .dnet model of size bytes from src.
func Decode[T matrix.Float](src io.ReaderAt, size int64) (*Network[T], serialization.Header, error) {
	reader, err := serialization.NewReader(src, size, serialization.ReaderOptions{})
	if err != nil {
		return nil, serialization.Header{}, err
	}
	return decode[T](reader)
}

func decode[T matrix.Float](reader *serialization.Reader) (*Network[T], serialization.Header, error) {
	header := reader.Header()
	if header.ModelType != ModelType || len(header.Topology) != 3 {
		return nil, header, fmt.Errorf("%w: type %q, topology %v", ErrIncompatibleModel, header.ModelType, header.Topology)
	}

	if err := checkStoredShapes(header); err != nil {
		return nil, header, err
	}

	// Parameters are overwritten below, so a fixed seed skips the entropy draw.
	config := DefaultConfig(header.Topology[0], header.Topology[1], header.Topology[2])
	config.Seed = 0
	n, err := NewWithConfig[T](config)
	if err != nil {
		return nil, header, err
	}
	n.learningRate = T(header.LearningRate)

	stateDict, err := serialization.ReadStateDict[T](reader)
	if err != nil {
		return nil, header, err
	}
	if err := n.LoadStateDict(stateDict); err != nil {
		return nil, header, err
	}
	return n, header, nil
}

// checkStoredShapes matches the header topology against the stored matrix
// shapes. The reader bounds stored shapes by the data section, so the
// network allocation that follows is bounded by the file size.
func checkStoredShapes(header serialization.Header) error {
	in, hidden, out := header.Topology[0], header.Topology[1], header.Topology[2]
	if in < 0 || hidden < 0 || out < 0 {
		return fmt.Errorf("%w: topology %v", ErrIncompatibleModel, header.Topology)
	}

	want := map[string]matrix.Shape{
		ParamWeightsInputHidden:  {in, hidden},
		ParamWeightsHiddenOutput: {hidden, out},
		ParamBiasHidden:          {1, hidden},
		ParamBiasOutput:          {1, out},
	}
	stored := make(map[string]matrix.Shape, len(header.Matrices))
	for _, meta := range header.Matrices {
		stored[meta.Name] = matrix.Shape{meta.Rows, meta.Cols}
	}
	for _, name := range ParamNames {
		got, ok := stored[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingParameter, name)
		}
		if got != want[name] {
			return fmt.Errorf("%w: %s is %dx%d, topology %v needs %dx%d",
				ErrIncompatibleModel, name, got[0], got[1], header.Topology, want[name][0], want[name][1])
		}
	}
	return nil
}

// LoadInto reads the parameters of a .dnet file into an existing network
// with the same topology. The learning rate is left unchanged.
func LoadInto[T matrix.Float](path string, n *Network[T]) (serialization.Header, error) {
	reader, err := serialization.Open(path)
	if err != nil {
		return serialization.Header{}, err
	}
	defer func() {
		_ = reader.Close()
	}()

	stateDict, err := serialization.ReadStateDict[T](reader)
	if err != nil {
		return serialization.Header{}, err
	}
	if err := n.LoadStateDict(stateDict); err != nil {
		return serialization.Header{}, err
	}
	return reader.Header(), nil
}
