package qtwirl

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/floats"
)

// Result maps each retained Pauli label to its twirled probability.
type Result map[PauliLabel]float64

// Labels returns the retained labels in canonical order (I < X < Y < Z per
// qubit, qubit 0 slowest).
func (r Result) Labels() []PauliLabel {
	out := make([]PauliLabel, 0, len(r))
	for label := range r {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Total sums the retained probabilities in canonical label order.
func (r Result) Total() float64 {
	values := make([]float64, 0, len(r))
	for _, label := range r.Labels() {
		values = append(values, r[label])
	}
	return floats.Sum(values)
}

/*
Twirler runs the twirling pipeline: validate the error model, fetch the
Pauli algebra and basis states for its qubit count, build the Kraus set,
validate it, project it onto every Pauli label and filter the result.
A Twirler is safe for concurrent use.
*/
type Twirler struct {
	config    *Config
	space     *AlgebraSpace
	builder   *ChannelBuilder
	validator *ChannelValidator
	engine    *TwirlEngine
	metrics   *Metrics
	logger    *log.Logger
}

// NewTwirler validates config and wires the pipeline. A nil config means
// NewConfig defaults.
func NewTwirler(config *Config) (*Twirler, error) {
	if config == nil {
		config = NewConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	errnie.Info(
		"NewTwirler - policy %v, estimator %v, cache %d, workers %d",
		config.IdentityPolicy,
		config.Estimator,
		config.CacheSize,
		config.Workers,
	)

	metrics := NewMetrics()
	space, err := NewAlgebraSpace(config.CacheSize, metrics)
	if err != nil {
		return nil, err
	}

	return &Twirler{
		config:    config,
		space:     space,
		builder:   NewChannelBuilder(config),
		validator: NewChannelValidator(config),
		engine:    NewTwirlEngine(config),
		metrics:   metrics,
		logger:    config.logger(),
	}, nil
}

// Twirl validates raw, twirls it with default settings and returns the
// retained Pauli probabilities. Nothing is kept between calls.
func Twirl(raw map[string]map[string]float64) (Result, error) {
	config := NewConfig()
	config.CacheSize = 0

	t, err := NewTwirler(config)
	if err != nil {
		return nil, err
	}
	return t.TwirlMap(raw)
}

// TwirlMap converts raw into an ErrorModel and twirls it.
func (t *Twirler) TwirlMap(raw map[string]map[string]float64) (Result, error) {
	model, err := NewErrorModel(raw)
	if err != nil {
		t.metrics.recordTwirl(time.Now(), false)
		return nil, err
	}
	return t.Twirl(model)
}

// Twirl runs the pipeline on an already validated model.
func (t *Twirler) Twirl(model *ErrorModel) (result Result, err error) {
	startTime := time.Now()
	defer func() {
		t.metrics.recordTwirl(startTime, err == nil)
	}()

	n := model.Qubits()
	if n < 1 {
		return nil, argumentError("error model is empty, construct it with NewErrorModel")
	}
	if n > t.config.MaxQubits {
		return nil, argumentError("%d qubits exceeds the configured maximum of %d", n, t.config.MaxQubits)
	}

	ops, err := t.space.Acquire(n)
	if err != nil {
		return nil, err
	}

	kraus, err := t.builder.Build(model, ops.Algebra, ops.Basis)
	if err != nil {
		return nil, err
	}

	if err := t.validator.Validate(kraus, n); err != nil {
		return nil, err
	}

	labels := ops.Algebra.Labels()
	weights, err := t.engine.Project(kraus, ops.Algebra, labels)
	if err != nil {
		return nil, err
	}

	result = make(Result)
	for i, label := range labels {
		if weights[i] > t.config.ResultTolerance {
			result[label] = weights[i]
		}
	}

	t.logger.Debug("twirled error model",
		"qubits", n,
		"kraus", len(kraus),
		"retained", len(result),
		"elapsed", time.Since(startTime),
	)

	return result, nil
}

func (t *Twirler) Metrics() *Metrics {
	return t.metrics
}

func (t *Twirler) Config() *Config {
	return t.config
}
