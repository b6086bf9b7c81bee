// Package trainer runs per-sample stochastic gradient descent over a
// dataset and reports loss and accuracy per epoch.
package trainer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/digitnet/internal/dataset"
	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/network"
	"github.com/born-ml/digitnet/internal/parallel"
)

// ErrEmptyDataset is returned when there are no samples to train on.
var ErrEmptyDataset = errors.New("trainer: dataset has no samples")

// Config holds training loop parameters.
type Config struct {
	Epochs   int // Passes over the dataset (default: 10)
	LogEvery int // Log a summary every N epochs; 0 disables epoch logs (default: 1)

	// Target is the class every sample of an unlabelled dataset is trained
	// toward.
	Target int

	// Workers is the number of goroutines Evaluate spreads inference over;
	// <= 1 evaluates sequentially. Training is always sequential.
	Workers int
}

// DefaultConfig returns the default training configuration.
func DefaultConfig() Config {
	return Config{
		Epochs:   10,
		LogEvery: 1,
		Target:   0,
		Workers:  1,
	}
}

// Stats summarizes one pass over a dataset.
type Stats struct {
	Epoch    int           // 1-based; 0 for Evaluate
	Samples  int           // Samples seen
	Loss     float64       // Mean squared error of the outputs before each update
	Accuracy float64       // Fraction of samples whose argmax matches the target
	Duration time.Duration // Wall time of the pass
}

// Trainer drives a network through FeedForward/Learn pairs.
type Trainer[T matrix.Float] struct {
	net    *network.Network[T]
	config Config
	logger *slog.Logger
}

// New creates a trainer. A nil logger uses slog.Default(); a non-positive
// Epochs uses the default.
func New[T matrix.Float](net *network.Network[T], config Config, logger *slog.Logger) *Trainer[T] {
	if config.Epochs <= 0 {
		config.Epochs = DefaultConfig().Epochs
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Trainer[T]{net: net, config: config, logger: logger}
}

// Train runs Config.Epochs passes over set, one FeedForward and one Learn
// per sample in row order, and returns the statistics of every epoch.
func (t *Trainer[T]) Train(set *dataset.Set[T]) ([]Stats, error) {
	if set.Len() == 0 {
		return nil, ErrEmptyDataset
	}

	t.logger.Info("training started",
		"samples", set.Len(),
		"epochs", t.config.Epochs,
		"topology", fmt.Sprintf("%d-%d-%d", t.net.InputNodes(), t.net.HiddenNodes(), t.net.OutputNodes()),
		"learning_rate", t.net.LearningRate(),
		"labelled", set.Labelled(),
	)

	history := make([]Stats, 0, t.config.Epochs)
	for epoch := 1; epoch <= t.config.Epochs; epoch++ {
		stats, err := t.epoch(set)
		if err != nil {
			return history, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		stats.Epoch = epoch
		history = append(history, stats)

		if t.config.LogEvery > 0 && (epoch%t.config.LogEvery == 0 || epoch == t.config.Epochs) {
			t.logger.Info("epoch complete",
				"epoch", epoch,
				"loss", stats.Loss,
				"accuracy", stats.Accuracy,
				"duration", stats.Duration,
			)
		}
	}
	return history, nil
}

// Evaluate computes loss and accuracy over set without updating the
// network or its cached activations.
func (t *Trainer[T]) Evaluate(set *dataset.Set[T]) (Stats, error) {
	n := set.Len()
	if n == 0 {
		return Stats{}, ErrEmptyDataset
	}

	start := time.Now()
	losses := make([]float64, n)
	hits := make([]bool, n)
	cfg := parallel.Config{Workers: t.config.Workers, MinChunk: 16}
	err := parallel.For(n, cfg, func(i int) error {
		input, target, err := t.sample(set, i)
		if err != nil {
			return err
		}
		output, err := t.net.Infer(input)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		losses[i] = meanSquaredError(output, target)
		hits[i] = Argmax(output) == Argmax(target)
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	var correct int
	for _, hit := range hits {
		if hit {
			correct++
		}
	}
	return Stats{
		Samples:  n,
		Loss:     floats.Sum(losses) / float64(n),
		Accuracy: float64(correct) / float64(n),
		Duration: time.Since(start),
	}, nil
}

func (t *Trainer[T]) sample(set *dataset.Set[T], i int) (input, target *matrix.Matrix[T], err error) {
	if input, err = set.Sample(i); err != nil {
		return nil, nil, err
	}
	if target, err = set.Target(i, t.config.Target); err != nil {
		return nil, nil, err
	}
	return input, target, nil
}

// epoch runs one FeedForward/Learn pair per sample in row order.
func (t *Trainer[T]) epoch(set *dataset.Set[T]) (Stats, error) {
	start := time.Now()
	var sumLoss float64
	var correct int

	for i := 0; i < set.Len(); i++ {
		input, target, err := t.sample(set, i)
		if err != nil {
			return Stats{}, err
		}

		output, err := t.net.FeedForward(input)
		if err != nil {
			return Stats{}, fmt.Errorf("sample %d: %w", i, err)
		}
		sumLoss += meanSquaredError(output, target)
		if Argmax(output) == Argmax(target) {
			correct++
		}

		if err := t.net.Learn(input, target); err != nil {
			return Stats{}, fmt.Errorf("sample %d: %w", i, err)
		}
	}

	n := set.Len()
	return Stats{
		Samples:  n,
		Loss:     sumLoss / float64(n),
		Accuracy: float64(correct) / float64(n),
		Duration: time.Since(start),
	}, nil
}

// Argmax returns the flat index of the largest element of m; ties go to
// the lowest index. m must not be empty.
func Argmax[T matrix.Float](m *matrix.Matrix[T]) int {
	return floats.MaxIdx(toFloat64(m.Flatten()))
}

func meanSquaredError[T matrix.Float](output, target *matrix.Matrix[T]) float64 {
	y := toFloat64(output.Flatten())
	tv := toFloat64(target.Flatten())
	floats.Sub(y, tv)
	return floats.Dot(y, y) / float64(len(y))
}

func toFloat64[T matrix.Float](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
