package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	gferrors "github.com/vnykmshr/goinvoke/pkg/common/errors"
	"github.com/vnykmshr/goinvoke/pkg/common/logging"
	"github.com/vnykmshr/goinvoke/pkg/invoke/debounce"
	"github.com/vnykmshr/goinvoke/pkg/invoke/throttle"
	"github.com/vnykmshr/goinvoke/pkg/metrics"
)

const module = "policy"

// Wrapper kinds a policy can describe.
const (
	KindDebounce = "debounce"
	KindThrottle = "throttle"
)

// Policy describes one named debouncer or throttler. Unset edges take the
// kind's defaults: trailing only for debounce, both for throttle.
type Policy struct {
	Kind     string `yaml:"kind"`
	WaitMS   int    `yaml:"wait_ms"`
	Leading  *bool  `yaml:"leading"`
	Trailing *bool  `yaml:"trailing"`
}

type Logging struct {
	Level string `yaml:"level"` // "debug","info","warn","error"
}

type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// File is the root of a policy document.
type File struct {
	Logging  Logging           `yaml:"logging"`
	Metrics  Metrics           `yaml:"metrics"`
	Policies map[string]Policy `yaml:"policies"`
}

// Wait returns the policy's wait as a duration.
func (p Policy) Wait() time.Duration {
	return time.Duration(p.WaitMS) * time.Millisecond
}

func (p Policy) edges() (leading, trailing bool) {
	switch p.Kind {
	case KindThrottle:
		leading, trailing = true, true
	default:
		leading, trailing = false, true
	}
	if p.Leading != nil {
		leading = *p.Leading
	}
	if p.Trailing != nil {
		trailing = *p.Trailing
	}
	return leading, trailing
}

func (p Policy) validate(name string) error {
	field := func(f string) string { return "policies." + name + "." + f }

	if p.Kind != KindDebounce && p.Kind != KindThrottle {
		return gferrors.NewValidationError(module, field("kind"), p.Kind, "unknown wrapper kind").
			WithHint(`use "debounce" or "throttle"`)
	}
	if p.WaitMS < 0 {
		return gferrors.NewValidationError(module, field("wait_ms"), p.WaitMS, "must not be negative")
	}
	if leading, trailing := p.edges(); !leading && !trailing {
		return gferrors.NewValidationError(module, field("trailing"), false, "leading and trailing are both disabled").
			WithHint("enable at least one edge")
	}
	return nil
}

// DebounceConfig converts the policy to a debounce configuration. Callers
// may still set Clock, OnError and Logger on the result.
func (p Policy) DebounceConfig() debounce.Config {
	cfg := debounce.DefaultConfig()
	cfg.Wait = p.Wait()
	cfg.Leading, cfg.Trailing = p.edges()
	return cfg
}

// ThrottleConfig converts the policy to a throttle configuration.
func (p Policy) ThrottleConfig() throttle.Config {
	cfg := throttle.DefaultConfig()
	cfg.Wait = p.Wait()
	cfg.Leading, cfg.Trailing = p.edges()
	return cfg
}

// Load reads and validates a policy file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes and validates a policy document. Unknown fields are
// rejected so that misspelled options do not pass silently.
func Parse(b []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode policy file: %w", err)
	}

	if f.Logging.Level == "" {
		f.Logging.Level = "info"
	}
	if f.Metrics.Namespace == "" {
		f.Metrics.Namespace = metrics.DefaultNamespace
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every policy in the file.
func (f *File) Validate() error {
	for _, name := range f.Names() {
		if err := f.Policies[name].validate(name); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the policy names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Policies))
	for name := range f.Policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *File) lookup(name, kind string) (Policy, error) {
	p, ok := f.Policies[name]
	if !ok {
		return Policy{}, gferrors.NewValidationError(module, "policies", name, "no such policy")
	}
	if p.Kind != kind {
		return Policy{}, gferrors.NewValidationError(module, "policies."+name+".kind", p.Kind, "is not "+kind)
	}
	return p, nil
}

// Debounce returns the named debounce policy as a configuration carrying the
// file's logger and metrics settings.
func (f *File) Debounce(name string, logger *zap.Logger, reg prometheus.Registerer) (debounce.Config, error) {
	p, err := f.lookup(name, KindDebounce)
	if err != nil {
		return debounce.Config{}, err
	}
	cfg := p.DebounceConfig()
	cfg.Name = name
	cfg.Logger = logger
	cfg.Metrics = f.MetricsConfig(reg)
	return cfg, nil
}

// Throttle returns the named throttle policy as a configuration carrying the
// file's logger and metrics settings.
func (f *File) Throttle(name string, logger *zap.Logger, reg prometheus.Registerer) (throttle.Config, error) {
	p, err := f.lookup(name, KindThrottle)
	if err != nil {
		return throttle.Config{}, err
	}
	cfg := p.ThrottleConfig()
	cfg.Name = name
	cfg.Logger = logger
	cfg.Metrics = f.MetricsConfig(reg)
	return cfg, nil
}

// Logger builds a production logger at the file's level.
func (f *File) Logger() *zap.Logger {
	return logging.New(f.Logging.Level)
}

// MetricsConfig returns the file's metrics settings bound to reg. A nil reg
// uses the default Prometheus registerer.
func (f *File) MetricsConfig(reg prometheus.Registerer) metrics.Config {
	return metrics.Config{
		Enabled:   f.Metrics.Enabled,
		Registry:  reg,
		Namespace: f.Metrics.Namespace,
	}
}
