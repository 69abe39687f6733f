package jenkins

import (
	set "gopkg.in/fatih/set.v0"

	"github.com/signalfx/jenkins-metrics/pkg/monitors/jenkins/client"
)

func (p *pass) executorMetrics() {
	logger.Info("Loading computers")
	computers := p.api.Computers(p.ctx)

	p.gauge(computers.TotalExecutors, executorsTotal)
	p.gauge(computers.BusyExecutors, executorsBusy)
	// Not clamped, Jenkins can briefly report more busy than total executors
	p.gauge(computers.TotalExecutors-computers.BusyExecutors, executorsFree)

	offline := offlineComputers(computers.Computers)
	p.offlineNodes = offlineDisplayNames(offline)

	if p.conf.MonitorNodes {
		total := int64(len(computers.Computers))
		p.gauge(total, nodesTotal)
		p.gauge(int64(len(offline)), nodesOffline)
		p.gauge(total-int64(len(offline)), nodesOnline)
	}
}

func offlineComputers(computers []client.Computer) []client.Computer {
	var out []client.Computer
	for _, c := range computers {
		if c.Offline {
			out = append(out, c)
		}
	}
	return out
}

func offlineDisplayNames(offline []client.Computer) *set.SetNonTS {
	names := set.New(set.NonThreadSafe).(*set.SetNonTS)
	for _, c := range offline {
		names.Add(c.DisplayName)
	}
	return names
}
