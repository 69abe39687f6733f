// Package schedule decides when polling passes run: once, on a fixed
// interval or on a cron schedule.
package schedule

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/signalfx/jenkins-metrics/pkg/utils"
)

var logger = log.WithFields(log.Fields{"component": "schedule"})

// Config selects the schedule.  Interval and Cron are mutually exclusive; if
// neither is set there is a single pass.
type Config struct {
	Interval time.Duration
	// Standard 5 field cron expression or a descriptor such as "@every 1m"
	Cron string
}

// cronLogger adapts logrus to cron.Logger
type cronLogger struct {
	logger log.FieldLogger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.WithError(err).WithFields(fields(keysAndValues)).Error(msg)
}

func fields(keysAndValues []interface{}) log.Fields {
	out := log.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if k, ok := keysAndValues[i].(string); ok {
			out[k] = keysAndValues[i+1]
		}
	}
	return out
}

// Run calls fn according to conf.  In the once mode it returns after the
// single call, otherwise it blocks until ctx is done and the pass that may
// be running at that point has returned.  Calls never overlap.
func Run(ctx context.Context, conf Config, fn func(ctx context.Context)) error {
	switch {
	case conf.Interval > 0 && conf.Cron != "":
		return errors.New("an interval and a cron schedule cannot both be set")
	case conf.Cron != "":
		return runCron(ctx, conf.Cron, fn)
	case conf.Interval > 0:
		logger.Infof("Polling every %s", conf.Interval)
		<-utils.RunOnInterval(ctx, func() { fn(ctx) }, conf.Interval)
		return nil
	default:
		fn(ctx)
		return nil
	}
}

func runCron(ctx context.Context, expr string, fn func(ctx context.Context)) error {
	cl := &cronLogger{logger: logger}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	if _, err := c.AddFunc(expr, func() { fn(ctx) }); err != nil {
		return errors.Wrapf(err, "invalid schedule %q", expr)
	}

	logger.Infof("Polling on schedule %q", expr)
	c.Start()
	<-ctx.Done()

	// Wait for a pass that is still running
	<-c.Stop().Done()
	return nil
}
