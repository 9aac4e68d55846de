package optim

import "math"

// Adam implements the Adam optimizer (Adaptive Moment Estimation).
//
// Update rule:
//
//	m = beta1 * m + (1 - beta1) * grad
//	v = beta2 * v + (1 - beta2) * grad²
//	m_hat = m / (1 - beta1^t)
//	v_hat = v / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: Kingma & Ba, "Adam: A Method for Stochastic Optimization" (2014).
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int                  // Timestep for bias correction
	m     map[string][]float64 // First moment estimates
	v     map[string][]float64 // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer with bias correction.
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		m:     make(map[string][]float64),
		v:     make(map[string][]float64),
	}
}

// Step implements Optimizer. Each call advances the timestep by one.
func (a *Adam) Step(params []Param) [][]float64 {
	a.t++

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	deltas := make([][]float64, len(params))
	for i, p := range params {
		m := a.moment(a.m, p)
		v := a.moment(a.v, p)

		delta := make([]float64, len(p.Grad))
		for j, g := range p.Grad {
			m[j] = a.beta1*m[j] + (1.0-a.beta1)*g
			v[j] = a.beta2*v[j] + (1.0-a.beta2)*g*g

			mHat := m[j] / biasCorrection1
			vHat := v[j] / biasCorrection2

			delta[j] = -a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
		deltas[i] = delta
	}
	return deltas
}

func (a *Adam) moment(store map[string][]float64, p Param) []float64 {
	buf, ok := store[p.Name]
	if !ok || len(buf) != len(p.Grad) {
		buf = make([]float64, len(p.Grad))
		store[p.Name] = buf
	}
	return buf
}

// LR returns the current learning rate.
func (a *Adam) LR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}
