package jenkins

import (
	"time"

	"github.com/signalfx/jenkins-metrics/pkg/monitors/jenkins/client"
	"github.com/signalfx/jenkins-metrics/pkg/utils"
)

func (p *pass) queueMetrics() {
	logger.Info("Loading queue")
	p.queue = p.api.Queue(p.ctx)

	p.gauge(int64(len(p.queue.Items)), queueSize)
}

// itemsForJob returns the queue items whose task is the given job
func itemsForJob(items []client.QueueItem, job string) []client.QueueItem {
	var out []client.QueueItem
	for _, it := range items {
		if it.TaskName() == job {
			out = append(out, it)
		}
	}
	return out
}

// queueDelay is how long the oldest of items has been waiting, in millis, as
// of now.  Items without an inQueueSince are treated as queued right now.  It
// is 0 for no items.
func queueDelay(items []client.QueueItem, now time.Time) int64 {
	if len(items) == 0 {
		return 0
	}

	nowMillis := utils.TimeToMillis(now)
	earliest := nowMillis
	for _, it := range items {
		since := nowMillis
		if it.InQueueSince != nil {
			since = *it.InQueueSince
		}
		if since < earliest {
			earliest = since
		}
	}

	return nowMillis - earliest
}
