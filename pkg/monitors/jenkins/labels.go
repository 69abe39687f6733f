package jenkins

import (
	log "github.com/sirupsen/logrus"
	set "gopkg.in/fatih/set.v0"
)

func (p *pass) labelMetrics(label string) {
	logger.WithFields(log.Fields{"label": label}).Info("Loading information for label")
	info := p.api.Label(p.ctx, label)
	nodeNames := info.NodeNames()

	p.gauge(int64(len(info.TiedJobs)), labelsGroup, label, labelTiedJobs)
	p.gauge(int64(len(nodeNames)), labelsGroup, label, labelNodesTotal)
	p.gauge(info.TotalExecutors, labelsGroup, label, labelExecutorsTotal)
	p.gauge(info.BusyExecutors, labelsGroup, label, labelExecutorsBusy)
	p.gauge(info.TotalExecutors-info.BusyExecutors, labelsGroup, label, labelExecutorsFree)
	p.gauge(labelOfflineCount(p.offlineNodes, nodeNames), labelsGroup, label, labelExecutorsOffline)
}

// labelOfflineCount is the number of label nodes that are offline.  The
// offline set holds computer display names while label nodes are identified
// by node name; the two are matched by plain string equality, so a node whose
// display name differs from its node name is never counted.
func labelOfflineCount(offlineDisplayNames set.Interface, labelNodeNames []string) int64 {
	nodes := set.New(set.NonThreadSafe)
	for _, n := range labelNodeNames {
		nodes.Add(n)
	}
	return int64(set.Intersection(offlineDisplayNames, nodes).Size())
}
