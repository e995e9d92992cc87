package qtwirl

import (
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config tunes tolerances, policies and resource limits of a Twirler.
type Config struct {
	// CompletenessTolerance bounds |sum K†K - I| element-wise.
	CompletenessTolerance float64
	// ResultTolerance drops labels whose probability does not exceed it.
	ResultTolerance float64
	// HermitianTolerance and EigenTolerance apply to channel-matrix checks.
	HermitianTolerance float64
	EigenTolerance     float64

	IdentityPolicy        IdentityPolicy
	Estimator             Estimator
	ValidateChannelMatrix bool

	MaxQubits int
	CacheSize int
	Workers   int

	LogLevel string
	Logger   *log.Logger
}

func NewConfig() *Config {
	return &Config{
		CompletenessTolerance: 1e-10,
		ResultTolerance:       1e-8,
		HermitianTolerance:    1e-8,
		EigenTolerance:        1e-10,
		IdentityPolicy:        IdentityAsLeftover,
		Estimator:             EstimatorTraceOverlap,
		MaxQubits:             6,
		CacheSize:             4,
		Workers:               runtime.NumCPU(),
		LogLevel:              "warn",
		Logger:                newLogger(log.WarnLevel),
	}
}

/*
ConfigFromEnv starts from NewConfig and overlays QTWIRL_* environment
variables, e.g. QTWIRL_RESULT_TOLERANCE=1e-6 or
QTWIRL_IDENTITY_POLICY=discard.
*/
func ConfigFromEnv() (*Config, error) {
	defaults := NewConfig()

	v := viper.New()
	v.SetEnvPrefix("qtwirl")
	v.AutomaticEnv()

	v.SetDefault("completeness_tolerance", defaults.CompletenessTolerance)
	v.SetDefault("result_tolerance", defaults.ResultTolerance)
	v.SetDefault("hermitian_tolerance", defaults.HermitianTolerance)
	v.SetDefault("eigen_tolerance", defaults.EigenTolerance)
	v.SetDefault("identity_policy", defaults.IdentityPolicy.String())
	v.SetDefault("estimator", defaults.Estimator.String())
	v.SetDefault("validate_channel_matrix", defaults.ValidateChannelMatrix)
	v.SetDefault("max_qubits", defaults.MaxQubits)
	v.SetDefault("cache_size", defaults.CacheSize)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("log_level", defaults.LogLevel)

	issues := newViolations(ErrArgument)

	policy, err := ParseIdentityPolicy(v.GetString("identity_policy"))
	if err != nil {
		issues.add("QTWIRL_IDENTITY_POLICY: %v", err)
	}

	estimator, err := ParseEstimator(v.GetString("estimator"))
	if err != nil {
		issues.add("QTWIRL_ESTIMATOR: %v", err)
	}

	level, err := log.ParseLevel(v.GetString("log_level"))
	if err != nil {
		issues.add("QTWIRL_LOG_LEVEL: %v", err)
	}

	cfg := &Config{
		CompletenessTolerance: v.GetFloat64("completeness_tolerance"),
		ResultTolerance:       v.GetFloat64("result_tolerance"),
		HermitianTolerance:    v.GetFloat64("hermitian_tolerance"),
		EigenTolerance:        v.GetFloat64("eigen_tolerance"),
		IdentityPolicy:        policy,
		Estimator:             estimator,
		ValidateChannelMatrix: v.GetBool("validate_channel_matrix"),
		MaxQubits:             v.GetInt("max_qubits"),
		CacheSize:             v.GetInt("cache_size"),
		Workers:               v.GetInt("workers"),
		LogLevel:              v.GetString("log_level"),
		Logger:                newLogger(level),
	}

	cfg.validate(issues)
	if err := issues.asError(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	issues := newViolations(ErrArgument)
	c.validate(issues)
	return issues.asError()
}

func (c *Config) validate(issues *violations) {
	tolerances := []struct {
		name  string
		value float64
	}{
		{"completeness tolerance", c.CompletenessTolerance},
		{"result tolerance", c.ResultTolerance},
		{"hermitian tolerance", c.HermitianTolerance},
		{"eigen tolerance", c.EigenTolerance},
	}
	for _, t := range tolerances {
		if t.value < 0 {
			issues.add("%s must not be negative, got %g", t.name, t.value)
		}
	}

	if c.MaxQubits < 1 {
		issues.add("max qubits must be at least 1, got %d", c.MaxQubits)
	}
	if c.CacheSize < 0 {
		issues.add("cache size must not be negative, got %d", c.CacheSize)
	}
	if c.Workers < 1 {
		issues.add("workers must be at least 1, got %d", c.Workers)
	}
}

func (c *Config) logger() *log.Logger {
	if c.Logger == nil {
		return newLogger(log.WarnLevel)
	}
	return c.Logger
}
