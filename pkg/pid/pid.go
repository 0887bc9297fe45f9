// pkg/pid/pid.go
package pid

// Vector is the set of operations the controller needs from its value type.
type Vector[V any] interface {
	Add(V) V
	Sub(V) V
	Scale(float64) V
}

// Gains holds the proportional, integral and derivative coefficients.
type Gains struct {
	P float64 `yaml:"p"`
	I float64 `yaml:"i"`
	D float64 `yaml:"d"`
}

// Axis is a proportional-integral-derivative controller over a vector quantity.
//
// The integral term is not clamped. Long stretches of uncorrected error build
// up windup that has to be unwound before the output settles.
type Axis[V Vector[V]] struct {
	Gains Gains

	target    V
	integral  V
	prevError V
	primed    bool
}

// New creates a controller with zero target and empty history.
func New[V Vector[V]](g Gains) *Axis[V] {
	return &Axis[V]{Gains: g}
}

// SetTarget replaces the target value. Integral and derivative history are
// kept so a moving target does not cause jumps in the output.
func (a *Axis[V]) SetTarget(target V) {
	a.target = target
}

func (a *Axis[V]) Target() V {
	return a.target
}

// Compute advances the controller by dt seconds and returns the correction to
// apply to current. dt must be non-zero; callers skip empty ticks.
func (a *Axis[V]) Compute(dt float64, current V) V {
	err := a.target.Sub(current)

	// no previous sample exists before the first call
	derivative := err.Scale(0)
	if a.primed {
		derivative = err.Sub(a.prevError).Scale(1 / dt)
	}
	a.primed = true

	a.integral = a.integral.Add(err.Scale(dt))

	out := err.Scale(a.Gains.P).
		Add(a.integral.Scale(a.Gains.I)).
		Add(derivative.Scale(a.Gains.D))

	a.prevError = err
	return out
}

// Terms returns the last error, the accumulated integral and whether the
// derivative term is active.
func (a *Axis[V]) Terms() (lastError, integral V, primed bool) {
	return a.prevError, a.integral, a.primed
}

// Scalar is a one-dimensional value usable with Axis.
type Scalar float64

func (s Scalar) Add(o Scalar) Scalar    { return s + o }
func (s Scalar) Sub(o Scalar) Scalar    { return s - o }
func (s Scalar) Scale(f float64) Scalar { return s * Scalar(f) }
