package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"

	"github.com/neurlang/pimodel/datasets"
	"github.com/neurlang/pimodel/datasets/parity"
	"github.com/neurlang/pimodel/hash"
	"github.com/neurlang/pimodel/ssl"
	"github.com/neurlang/pimodel/trainer"
)

// guess is the toy model, it predicts the parity of a sample from a salted hash
func guess(s parity.Sample, salt uint32) float64 {
	return float64(hash.Hash(s.Feature(0), salt, 2))
}

func supervised(ctx context.Context, s trainer.Step, features []parity.Sample, targets []uint16) (float64, error) {
	var sq = make([]float64, len(features))
	for i, f := range features {
		d := guess(f, uint32(s.Epoch)) - float64(targets[i])
		sq[i] = d * d
	}
	return stat.Mean(sq, nil), nil
}

func unsupervised(ctx context.Context, s trainer.Step, features []parity.Sample) (float64, error) {
	var sq = make([]float64, len(features))
	for i, f := range features {
		// two noisy views of the same sample
		d := guess(f, uint32(s.Epoch)) - guess(f, uint32(s.Epoch)+uint32(s.Step)+1)
		sq[i] = d * d
	}
	return s.Weight * stat.Mean(sq, nil), nil
}

func main() {
	klog.InitFlags(nil)
	defaults := trainer.DefaultHyperParameters()

	size := flag.Int("size", 50000, "number of samples in the dataset")
	labeled := flag.Int("labeled", 5000, "number of samples to label randomly")
	batchSize := flag.Int("batch-size", 100, "batch size")
	p := flag.Float64("p", 1, "probability that a batch is labeled, unset means ratio mode")
	numSteps := flag.Int("num-steps", 0, "batches per epoch, unset means ratio mode")
	seed := flag.Uint64("seed", 0, "shuffle seed, unset draws one")
	workers := flag.Int("workers", 1, "sample fetching workers, negative means one per cpu thread")
	epochs := flag.Int("epochs", defaults.Epochs, "number of epochs")
	rampupStop := flag.Int("rampup_stop", defaults.RampupStop, "epochs of ramp-up")
	rampdownStart := flag.Int("rampdown_start", defaults.RampdownStart, "number of epochs before the end to start rampdown")
	wMax := flag.Float64("w_max", defaults.WMax, "maximum unsupervised weight, default=100 for CIFAR10 as described in paper")
	lr := flag.Float64("lr", defaults.LR, "max learning rate")
	baseline := flag.Bool("baseline", false, "train on labeled data only (needs -p 1)")
	pgo := flag.Bool("pgo", false, "enable pgo")
	flag.Parse()

	var cfg = ssl.Config{BatchSize: *batchSize, Workers: *workers}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.P = p
		case "num-steps":
			cfg.Steps = numSteps
		case "seed":
			cfg.Seed = seed
		}
	})

	var h = trainer.HyperParameters{
		Epochs:        *epochs,
		RampupStop:    *rampupStop,
		RampdownStart: *rampdownStart,
		WMax:          *wMax,
		LR:            *lr,
		Baseline:      *baseline,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := profiled(*pgo, func() error {
		return run(ctx, *size, *labeled, cfg, h)
	})
	if errors.Is(err, context.Canceled) {
		klog.InfoS("interrupted")
	} else if err != nil {
		klog.Fatalf("Failed with error: %+v", err)
	}
	klog.Flush()
}

func run(ctx context.Context, size, labeled int, cfg ssl.Config, h trainer.HyperParameters) error {
	split, err := datasets.NewSplit(size)
	if err != nil {
		return err
	}
	var rng *rand.Rand
	if cfg.Seed != nil {
		rng = rand.New(rand.NewSource(int64(*cfg.Seed)))
	}
	if err := split.LabelRandomly(labeled, rng); err != nil {
		return err
	}
	fmt.Println("Active set length:", split.LabeledCount())
	fmt.Println("Pool set length:", split.PoolCount())
	klog.V(1).InfoS("labeling", "filter_bytes", len(split.Filter()), "version", split.Version())

	it, err := ssl.New[parity.Sample, uint16](parity.Sequence(size), split, cfg)
	if err != nil {
		return err
	}
	loop, err := trainer.NewLoop(it, h, supervised, unsupervised)
	if err != nil {
		return err
	}
	loop.OnEpoch = func(ctx context.Context, stats trainer.EpochStats) error {
		fmt.Printf("epoch %d: %d/%d batches, supervised %.4f unsupervised %.4f weight %.4f lr %.6f %x\n",
			stats.Epoch, stats.LabeledBatches, stats.Batches(),
			stats.SupervisedLoss, stats.UnsupervisedLoss, stats.Weight, stats.LearningRate, stats.Fingerprint[:8])
		return nil
	}
	_, err = loop.Run(ctx)
	return err
}
