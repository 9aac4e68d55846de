package optim

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate SGD in relevant directions and dampens oscillations.
type SGD struct {
	lr         float64
	momentum   float64
	velocities map[string][]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[string][]float64),
	}
}

// Step implements Optimizer.
func (s *SGD) Step(params []Param) [][]float64 {
	deltas := make([][]float64, len(params))
	for i, p := range params {
		if s.momentum == 0 {
			deltas[i] = scaled(p.Grad, -s.lr)
			continue
		}

		velocity, ok := s.velocities[p.Name]
		if !ok || len(velocity) != len(p.Grad) {
			velocity = make([]float64, len(p.Grad))
			s.velocities[p.Name] = velocity
		}
		for j, g := range p.Grad {
			velocity[j] = s.momentum*velocity[j] + g
		}
		deltas[i] = scaled(velocity, -s.lr)
	}
	return deltas
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

func scaled(values []float64, s float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * s
	}
	return out
}
