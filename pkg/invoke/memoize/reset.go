package memoize

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vnykmshr/goinvoke/pkg/common/logging"
	"github.com/vnykmshr/goinvoke/pkg/common/validation"
)

// Clearer is anything whose entries can be dropped at once. *Cache
// implements it.
type Clearer interface {
	Clear()
}

// ClearFunc adapts a function to Clearer.
type ClearFunc func()

// Clear calls f.
func (f ClearFunc) Clear() { f() }

// Resetter clears a set of caches on a cron schedule. A cleared cache is
// refilled by the next calls; nothing is evicted between resets.
type Resetter struct {
	spec   string
	cron   *cron.Cron
	entry  cron.EntryID
	logger *zap.Logger

	mu      sync.Mutex
	targets []Clearer
	resets  int
}

// NewResetter creates a Resetter that clears targets on the schedule given
// by spec. Five-field cron expressions, six-field expressions with seconds
// and descriptors such as "@hourly" or "@every 10m" are accepted. The
// schedule does not run until Start.
func NewResetter(spec string, logger *zap.Logger, targets ...Clearer) (*Resetter, error) {
	if err := validation.ValidateCronSpec(module, "schedule", spec); err != nil {
		return nil, err
	}
	schedule, err := validation.ParseCronSpec(spec)
	if err != nil {
		return nil, err
	}

	logger = logging.OrDefault(logger)
	r := &Resetter{
		spec:    spec,
		logger:  logger,
		targets: append([]Clearer(nil), targets...),
	}
	r.cron = cron.New(
		cron.WithLogger(cronLogger{logger.Sugar()}),
		cron.WithChain(cron.Recover(cronLogger{logger.Sugar()})),
	)
	r.entry = r.cron.Schedule(schedule, cron.FuncJob(r.RunNow))
	return r, nil
}

// Add registers another target.
func (r *Resetter) Add(target Clearer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, target)
}

// RunNow clears every target immediately.
func (r *Resetter) RunNow() {
	r.mu.Lock()
	targets := append([]Clearer(nil), r.targets...)
	r.resets++
	r.mu.Unlock()

	for _, t := range targets {
		t.Clear()
	}
	r.logger.Debug("memoize caches reset",
		zap.String("schedule", r.spec),
		zap.Int("targets", len(targets)),
	)
}

// Resets returns how many times the targets have been cleared.
func (r *Resetter) Resets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resets
}

// Start begins running the schedule in the background.
func (r *Resetter) Start() {
	r.cron.Start()
}

// Stop halts the schedule. The returned context is done once a reset that
// was already running has finished.
func (r *Resetter) Stop() context.Context {
	return r.cron.Stop()
}

// Next returns the next scheduled reset, or the zero time if the schedule
// is not running.
func (r *Resetter) Next() time.Time {
	return r.cron.Entry(r.entry).Next
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
