package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/born-ml/digitnet/internal/dataset"
	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/network"
	"github.com/born-ml/digitnet/internal/serialization"
	"github.com/born-ml/digitnet/internal/trainer"
)

type trainOptions struct {
	data    string
	labels  string
	epochs  int
	hidden  int
	lr      float64
	seed    int64
	samples int
	target  int
	out     string
	dtype   string
}

func runTrain(args []string, stdout, stderr io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts trainOptions
	fs.StringVar(&opts.data, "data", "", "Raw image file, directory of data0..data9 files, or IDX image file (with -labels)")
	fs.StringVar(&opts.labels, "labels", "", "IDX label file; makes -data an IDX image file")
	fs.IntVar(&opts.epochs, "epochs", 10, "Number of training epochs")
	fs.IntVar(&opts.hidden, "hidden", 10, "Hidden layer width")
	fs.Float64Var(&opts.lr, "lr", network.DefaultLearningRate, "Learning rate")
	fs.Int64Var(&opts.seed, "seed", -1, "Weight initialization seed (-1 = random)")
	fs.IntVar(&opts.samples, "samples", 700, "Images per file to train on (0 = all)")
	fs.IntVar(&opts.target, "target", 0, "Digit every sample is trained toward when the data is unlabelled")
	fs.StringVar(&opts.out, "out", "", "Write the trained model to this .dnet file")
	fs.StringVar(&opts.dtype, "dtype", "float64", "Element type: float32 or float64")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.epochs <= 0 {
		return fmt.Errorf("-epochs must be positive, got %d", opts.epochs)
	}

	dtype, ok := matrix.ParseDataType(opts.dtype)
	if !ok {
		return fmt.Errorf("unknown -dtype %q", opts.dtype)
	}
	if dtype == matrix.Float32 {
		return train[float32](opts, stdout, logger)
	}
	return train[float64](opts, stdout, logger)
}

func train[T matrix.Float](opts trainOptions, stdout io.Writer, logger *slog.Logger) error {
	set, err := loadSet[T](opts.data, opts.labels, opts.samples)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	config := network.DefaultConfig(dataset.SampleSize, opts.hidden, dataset.NumClasses)
	config.LearningRate = opts.lr
	config.Seed = opts.seed
	net, err := network.NewWithConfig[T](config)
	if err != nil {
		return err
	}
	// NewWithConfig maps a zero rate to the default.
	if err := net.SetLearningRate(T(opts.lr)); err != nil {
		return err
	}

	tr := trainer.New(net, trainer.Config{Epochs: opts.epochs, LogEvery: 1, Target: opts.target}, logger)
	history, err := tr.Train(set)
	if err != nil {
		return err
	}
	last := history[len(history)-1]
	fmt.Fprintf(stdout, "Training complete: %d epochs, loss %.6f, accuracy %.2f%%\n",
		last.Epoch, last.Loss, last.Accuracy*100)

	if opts.out == "" {
		return nil
	}
	err = network.Save(net, opts.out, network.SaveOptions{
		Training: &serialization.TrainingMeta{Epoch: last.Epoch, Loss: last.Loss},
		Metadata: map[string]string{"data": opts.data},
	})
	if err != nil {
		return err
	}
	logger.Info("model saved", "path", opts.out)
	return nil
}
