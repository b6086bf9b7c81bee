package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/born-ml/digitnet/internal/network"
	"github.com/born-ml/digitnet/internal/trainer"
)

func runPredict(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	model := fs.String("model", "", "Trained .dnet model")
	data := fs.String("data", "", "Raw image file (or IDX image file with -idx)")
	idx := fs.Bool("idx", false, "Read -data as an IDX image file")
	index := fs.Int("index", 0, "Image to classify")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *model == "" || *data == "" {
		return fmt.Errorf("-model and -data are required")
	}

	net, _, err := network.Load[float64](*model)
	if err != nil {
		return err
	}
	inputs, err := loadInputs(*data, *idx)
	if err != nil {
		return err
	}
	input, err := inputs.RowAt(*index)
	if err != nil {
		return err
	}

	prediction, err := net.Predict(input)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, prediction.String())
	fmt.Fprintf(stdout, "digit: %d\n", trainer.Argmax(prediction))
	return nil
}

func runEval(args []string, stdout, stderr io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	model := fs.String("model", "", "Trained .dnet model")
	data := fs.String("data", "", "Raw image file, directory of data0..data9 files, or IDX image file (with -labels)")
	labels := fs.String("labels", "", "IDX label file")
	samples := fs.Int("samples", 0, "Images per file to evaluate (0 = all)")
	target := fs.Int("target", 0, "Expected digit when the data is unlabelled")
	workers := fs.Int("workers", runtime.NumCPU(), "Goroutines used for inference")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *model == "" {
		return fmt.Errorf("-model is required")
	}

	net, header, err := network.Load[float64](*model)
	if err != nil {
		return err
	}
	set, err := loadSet[float64](*data, *labels, *samples)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	logger.Info("model loaded", "path", *model, "model_id", header.ModelID, "topology", header.Topology)

	stats, err := trainer.New(net, trainer.Config{Target: *target, Workers: *workers}, logger).Evaluate(set)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "samples %d, loss %.6f, accuracy %.2f%%\n", stats.Samples, stats.Loss, stats.Accuracy*100)
	return nil
}
