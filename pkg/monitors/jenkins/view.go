package jenkins

import (
	"github.com/signalfx/jenkins-metrics/pkg/monitors/jenkins/client"
	log "github.com/sirupsen/logrus"
)

// viewHealth is the number of jobs of a view per health bucket.  ok, fail
// and warn do not necessarily add up to total.
type viewHealth struct {
	total, ok, fail, warn int64
}

func (p *pass) viewMetrics(view string) {
	logger.WithFields(log.Fields{"view": view}).Info("Loading information for view")
	health := classifyJobs(p.api.View(p.ctx, view).Jobs)

	p.gauge(health.total, viewGroup, view, viewTotal)
	p.gauge(health.ok, viewGroup, view, viewOK)
	p.gauge(health.fail, viewGroup, view, viewFail)
	p.gauge(health.warn, viewGroup, view, viewWarn)
}

func classifyJobs(jobs []client.ViewJob) viewHealth {
	h := viewHealth{total: int64(len(jobs))}
	for _, j := range jobs {
		switch j.Color {
		case colorOK:
			h.ok++
		case colorFail:
			h.fail++
		case colorWarn:
			h.warn++
		}
	}
	return h
}
