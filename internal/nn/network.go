package nn

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"

	"github.com/born-ml/densenet/internal/linalg"
	"github.com/born-ml/densenet/internal/optim"
	"github.com/born-ml/densenet/internal/parallel"
)

// LayerSpec describes one layer of the topology.
type LayerSpec struct {
	Inputs     int
	Outputs    int
	Activation Activation
}

// Config holds everything needed to build a Network.
type Config struct {
	BatchSize int
	Layers    []LayerSpec

	// Seed drives initialization and per-epoch shuffling. 0 means time seeded.
	Seed int64

	// Momentum for the default SGD optimizer. Ignored when Optimizer is set.
	Momentum float64

	// Normalizer is applied to every input before it reaches the first layer.
	// nil leaves inputs unchanged.
	Normalizer *Normalizer

	// Optimizer overrides the default SGD. Its learning rate is replaced by
	// the one passed to Train.
	Optimizer optim.Optimizer
}

// Observer receives training progress. Implementations must be safe to call
// from the goroutine running Train or Test.
type Observer interface {
	ObserveEpoch(run string, epoch int, loss float64)
	ObserveReport(run string, r Report)
}

// History is the outcome of one Train call.
type History struct {
	Run    string
	Losses []float64 // Mean squared error per epoch, measured before each batch update.
}

// Network is an ordered chain of dense layers trained with mini-batch
// gradient descent on squared error.
//
// A Network is not safe for concurrent Train calls. Predict, Loss and Test
// only read parameters and may run concurrently with each other.
type Network struct {
	id         string
	layers     []*Layer
	batchSize  int
	normalizer *Normalizer
	rng        *rand.Rand
	optimizer  optim.Optimizer
	parallel   parallel.Config
	logger     zerolog.Logger
	observer   Observer
}

// New builds a Network with randomly initialized parameters.
//
// Returns ErrTopology if the layer chain is empty or a layer's input size
// differs from the previous layer's output size.
func New(cfg Config) (*Network, error) {
	if cfg.BatchSize < 1 {
		return nil, fmt.Errorf("new network: batch size %d: %w", cfg.BatchSize, ErrInvalidConfig)
	}
	if len(cfg.Layers) == 0 {
		return nil, fmt.Errorf("new network: no layers: %w", ErrTopology)
	}
	for i := 1; i < len(cfg.Layers); i++ {
		if cfg.Layers[i].Inputs != cfg.Layers[i-1].Outputs {
			return nil, fmt.Errorf("new network: layer %d takes %d inputs, layer %d gives %d: %w",
				i, cfg.Layers[i].Inputs, i-1, cfg.Layers[i-1].Outputs, ErrTopology)
		}
	}
	if err := cfg.Normalizer.Validate(cfg.Layers[0].Inputs); err != nil {
		return nil, fmt.Errorf("new network: %w", err)
	}

	rng := newRand(cfg.Seed)
	layers := make([]*Layer, len(cfg.Layers))
	for i, spec := range cfg.Layers {
		l, err := NewLayer(spec.Inputs, spec.Outputs, spec.Activation, rng)
		if err != nil {
			return nil, fmt.Errorf("new network: layer %d: %w", i, err)
		}
		layers[i] = l
	}

	opt := cfg.Optimizer
	if opt == nil {
		opt = optim.NewSGD(optim.SGDConfig{Momentum: cfg.Momentum})
	}

	return &Network{
		id:         uuid.New().String(),
		layers:     layers,
		batchSize:  cfg.BatchSize,
		normalizer: cfg.Normalizer,
		rng:        rng,
		optimizer:  opt,
		parallel:   parallel.DefaultConfig(),
		logger:     zerolog.Nop(),
	}, nil
}

// ID returns the identifier attached to this network's logs and observations.
func (n *Network) ID() string {
	return n.id
}

// SetLogger replaces the (silent by default) logger.
func (n *Network) SetLogger(l zerolog.Logger) {
	n.logger = l.With().Str("run", n.id).Logger()
}

// SetObserver installs o; nil removes the current observer.
func (n *Network) SetObserver(o Observer) {
	n.observer = o
}

// SetParallel replaces the fan-out configuration used by Test.
func (n *Network) SetParallel(cfg parallel.Config) {
	n.parallel = cfg
}

// Layers returns the layer chain. The layers are shared, not copied.
func (n *Network) Layers() []*Layer {
	out := make([]*Layer, len(n.layers))
	copy(out, n.layers)
	return out
}

// Inputs returns the number of features the network expects.
func (n *Network) Inputs() int {
	return n.layers[0].Inputs()
}

// Outputs returns the number of values the network predicts.
func (n *Network) Outputs() int {
	return n.layers[len(n.layers)-1].Outputs()
}

// Pass holds the intermediate values of one batched forward pass.
//
// Outputs[0] is the batch input and Outputs[i+1] the activated output of
// layer i, so len(Outputs) == len(layers)+1. Pre[i] is layer i's
// pre-activation sum. A Pass belongs to the call that produced it.
type Pass struct {
	Outputs []*linalg.Matrix
	Pre     []*linalg.Matrix
}

// Prediction returns the output of the last layer.
func (p *Pass) Prediction() *linalg.Matrix {
	return p.Outputs[len(p.Outputs)-1]
}

// Forward propagates a batch (one sample per row) through every layer.
// Inputs are used as given; normalization is the caller's concern.
func (n *Network) Forward(inputs *linalg.Matrix) (*Pass, error) {
	pass := &Pass{
		Outputs: make([]*linalg.Matrix, 0, len(n.layers)+1),
		Pre:     make([]*linalg.Matrix, 0, len(n.layers)),
	}
	pass.Outputs = append(pass.Outputs, inputs)

	x := inputs
	for i, l := range n.layers {
		res, err := l.ForwardBatch(x)
		if err != nil {
			return nil, fmt.Errorf("forward: layer %d: %w", i, err)
		}
		pass.Pre = append(pass.Pre, res.Pre)
		pass.Outputs = append(pass.Outputs, res.Post)
		x = res.Post
	}
	return pass, nil
}

// Gradient is ∂L/∂W and ∂L/∂b of one layer for L = ½ Σ (prediction - target)²
// summed over the batch.
type Gradient struct {
	Weights *linalg.Matrix
	Biases  *linalg.Vector
}

// Backward computes per-layer gradients from a forward pass.
//
// The error term starts as prediction - target and is carried back through
// each layer's activation derivative, evaluated on that layer's cached
// output. Parameters are not modified.
func (n *Network) Backward(pass *Pass, expected *linalg.Matrix) ([]Gradient, error) {
	if len(pass.Outputs) != len(n.layers)+1 {
		return nil, fmt.Errorf("backward: pass has %d outputs for %d layers: %w",
			len(pass.Outputs), len(n.layers), ErrDimensionMismatch)
	}

	errTerm, err := pass.Prediction().Sub(expected)
	if err != nil {
		return nil, fmt.Errorf("backward: %w", err)
	}

	grads := make([]Gradient, len(n.layers))
	last := len(n.layers) - 1

	delta, err := errTerm.Hadamard(n.derivative(last, pass))
	if err != nil {
		return nil, fmt.Errorf("backward: layer %d: %w", last, err)
	}

	for i := last; i >= 0; i-- {
		gw, err := pass.Outputs[i].Transpose().Mul(delta)
		if err != nil {
			return nil, fmt.Errorf("backward: layer %d weights: %w", i, err)
		}
		grads[i] = Gradient{Weights: gw, Biases: delta.CollapseRows()}

		if i == 0 {
			break
		}
		back, err := delta.Mul(n.layers[i].weights.Transpose())
		if err != nil {
			return nil, fmt.Errorf("backward: layer %d: %w", i, err)
		}
		if delta, err = back.Hadamard(n.derivative(i-1, pass)); err != nil {
			return nil, fmt.Errorf("backward: layer %d: %w", i-1, err)
		}
	}
	return grads, nil
}

// derivative returns f'(z) of layer i, recovered from its cached output.
func (n *Network) derivative(i int, pass *Pass) *linalg.Matrix {
	return pass.Outputs[i+1].Apply(n.layers[i].activation.DerivativeFromOutput)
}

// Step applies one optimizer update at learning rate lr.
func (n *Network) Step(grads []Gradient, lr float64) error {
	if len(grads) != len(n.layers) {
		return fmt.Errorf("step: %d gradients for %d layers: %w",
			len(grads), len(n.layers), ErrDimensionMismatch)
	}

	params := make([]optim.Param, 0, 2*len(grads))
	for i, g := range grads {
		if err := n.layers[i].checkShapes("step", g.Weights, g.Biases); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		params = append(params,
			optim.Param{Name: fmt.Sprintf("%d.weight", i), Grad: flatten(g.Weights)},
			optim.Param{Name: fmt.Sprintf("%d.bias", i), Grad: g.Biases.Slice()},
		)
	}

	n.optimizer.SetLR(lr)
	deltas := n.optimizer.Step(params)
	if len(deltas) != len(params) {
		return fmt.Errorf("step: optimizer returned %d deltas for %d parameters: %w",
			len(deltas), len(params), ErrDimensionMismatch)
	}

	// Every delta is converted before any layer is touched.
	dWs := make([]*linalg.Matrix, len(n.layers))
	dbs := make([]*linalg.Vector, len(n.layers))
	for i, l := range n.layers {
		dW, err := unflatten(deltas[2*i], l.Inputs(), l.Outputs())
		if err != nil {
			return fmt.Errorf("step: layer %d weights: %w", i, err)
		}
		if len(deltas[2*i+1]) != l.Outputs() {
			return fmt.Errorf("step: layer %d biases: %d values, want %d: %w",
				i, len(deltas[2*i+1]), l.Outputs(), ErrDimensionMismatch)
		}
		db, err := linalg.VectorFrom(deltas[2*i+1]...)
		if err != nil {
			return fmt.Errorf("step: layer %d biases: %w", i, err)
		}
		dWs[i], dbs[i] = dW, db
	}

	for i, l := range n.layers {
		if err := l.Update(dWs[i], dbs[i]); err != nil {
			return fmt.Errorf("step: layer %d: %w", i, err)
		}
	}
	return nil
}

// TrainBatch runs forward, backward and one update on a batch and returns
// the squared error measured before the update. The batch is used as given.
func (n *Network) TrainBatch(b Batch, lr float64) (float64, error) {
	pass, err := n.Forward(b.Inputs)
	if err != nil {
		return 0, err
	}
	loss, err := SquaredError(pass.Prediction(), b.Expected)
	if err != nil {
		return 0, err
	}
	grads, err := n.Backward(pass, b.Expected)
	if err != nil {
		return 0, err
	}
	if err := n.Step(grads, lr); err != nil {
		return 0, err
	}
	return loss, nil
}

// Train runs epochs passes over samples. Every epoch reshuffles the samples
// and splits them into batches of the configured size.
func (n *Network) Train(samples []Sample, epochs int, lr float64) (History, error) {
	if epochs < 1 {
		return History{}, fmt.Errorf("train: epochs %d: %w", epochs, ErrInvalidConfig)
	}
	if lr <= 0 {
		return History{}, fmt.Errorf("train: learning rate %g: %w", lr, ErrInvalidConfig)
	}
	normalized, err := n.normalizeSamples(samples)
	if err != nil {
		return History{}, fmt.Errorf("train: %w", err)
	}

	hist := History{Run: n.id, Losses: make([]float64, 0, epochs)}
	elements := float64(len(samples) * n.Outputs())

	for epoch := 1; epoch <= epochs; epoch++ {
		batches, err := Batches(shuffled(normalized, n.rng), n.batchSize, n.Inputs(), n.Outputs())
		if err != nil {
			return hist, fmt.Errorf("train: epoch %d: %w", epoch, err)
		}

		var total float64
		for _, b := range batches {
			loss, err := n.TrainBatch(b, lr)
			if err != nil {
				return hist, fmt.Errorf("train: epoch %d: %w", epoch, err)
			}
			total += loss
		}

		mse := 2 * total / elements
		hist.Losses = append(hist.Losses, mse)
		n.logger.Debug().
			Int("epoch", epoch).
			Float64("loss", mse).
			Int("batches", len(batches)).
			Msg("epoch done")
		if n.observer != nil {
			n.observer.ObserveEpoch(n.id, epoch, mse)
		}
	}

	mean, _ := stats.Mean(hist.Losses)
	stddev, _ := stats.StandardDeviation(hist.Losses)
	n.logger.Info().
		Int("epochs", epochs).
		Float64("learning_rate", lr).
		Float64("loss_mean", mean).
		Float64("loss_stddev", stddev).
		Float64("loss_final", hist.Losses[len(hist.Losses)-1]).
		Msg("training done")

	return hist, nil
}

// Predict runs a single raw sample through the network.
func (n *Network) Predict(input []float64) (*linalg.Vector, error) {
	normalized, err := n.normalizer.Normalize(input)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	x, err := linalg.VectorFrom(normalized...)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	for i, l := range n.layers {
		if x, err = l.Forward(x); err != nil {
			return nil, fmt.Errorf("predict: layer %d: %w", i, err)
		}
	}
	return n.normalizer.Denormalize(x), nil
}

// Loss returns the mean squared error of the network over samples.
func (n *Network) Loss(samples []Sample) (float64, error) {
	b, err := NewBatch(samples, n.Inputs(), n.Outputs())
	if err != nil {
		return 0, fmt.Errorf("loss: %w", err)
	}
	inputs, err := n.normalizer.NormalizeMatrix(b.Inputs)
	if err != nil {
		return 0, fmt.Errorf("loss: %w", err)
	}
	pass, err := n.Forward(inputs)
	if err != nil {
		return 0, fmt.Errorf("loss: %w", err)
	}
	return MeanSquaredError(pass.Prediction(), b.Expected)
}

// Test predicts every sample and reports RMSE and correlation against the
// expected outputs. Predictions fan out across workers.
func (n *Network) Test(samples []Sample) (Report, error) {
	if len(samples) == 0 {
		return Report{}, fmt.Errorf("test: %w", ErrEmptyInput)
	}

	predicted := make([]*linalg.Vector, len(samples))
	expected := make([]*linalg.Vector, len(samples))
	err := parallel.ForErr(len(samples), func(i int) error {
		p, err := n.Predict(samples[i].Inputs)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		e, err := linalg.VectorFrom(samples[i].Expected...)
		if err != nil {
			return fmt.Errorf("sample %d expected: %w", i, err)
		}
		predicted[i], expected[i] = p, e
		return nil
	}, n.parallel)
	if err != nil {
		return Report{}, fmt.Errorf("test: %w", err)
	}

	report, err := Evaluate(predicted, expected)
	if err != nil {
		return Report{}, fmt.Errorf("test: %w", err)
	}
	n.logger.Info().
		Int("samples", len(samples)).
		Float64("rmse", report.RMSE).
		Float64("correlation", report.Correlation).
		Msg("evaluation")
	if n.observer != nil {
		n.observer.ObserveReport(n.id, report)
	}
	return report, nil
}

func (n *Network) normalizeSamples(samples []Sample) ([]Sample, error) {
	out := make([]Sample, len(samples))
	for i, s := range samples {
		in, err := n.normalizer.Normalize(s.Inputs)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		out[i] = Sample{Inputs: in, Expected: s.Expected}
	}
	return out, nil
}

func flatten(m *linalg.Matrix) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out = append(out, m.At(r, c))
		}
	}
	return out
}

func unflatten(values []float64, rows, cols int) (*linalg.Matrix, error) {
	if len(values) != rows*cols {
		return nil, fmt.Errorf("%d values for %dx%d: %w", len(values), rows, cols, ErrDimensionMismatch)
	}
	m, err := linalg.NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		_ = m.Set(i/cols, i%cols, v)
	}
	return m, nil
}
