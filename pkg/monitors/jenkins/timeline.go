package jenkins

import (
	"time"

	"github.com/signalfx/jenkins-metrics/pkg/utils"
)

func (p *pass) timelineMetrics() {
	logger.Info("Loading timeline")

	p.gauge(p.startedBuilds(time.Minute), buildsStartedLastMinute)
	p.gauge(p.startedBuilds(time.Hour), buildsStartedLastHour)
}

// startedBuilds counts the timeline events in [now-window, now], with now
// read at the time of the call
func (p *pass) startedBuilds(window time.Duration) int64 {
	now := p.now()
	timeline := p.api.Timeline(p.ctx, p.conf.TimelineView,
		utils.TimeToMillis(now.Add(-window)), utils.TimeToMillis(now))
	return int64(len(timeline.Events))
}
