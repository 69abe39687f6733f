package jenkins

import (
	log "github.com/sirupsen/logrus"
)

func (p *pass) jobMetrics(job string) {
	logger.WithFields(log.Fields{"job": job}).Info("Loading information for job")

	queued := itemsForJob(p.queue.Items, job)
	delay := queueDelay(queued, p.now())
	p.gauge(int64(len(queued)), jobsGroup, job, jobQueueSize)
	p.timing(&delay, jobsGroup, job, jobQueueDelay)

	lastSuccessful := p.api.LastSuccessfulBuild(p.ctx, job)
	p.timing(lastSuccessful.Duration, jobsGroup, job, jobDuration)
}
