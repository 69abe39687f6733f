package jenkins

const monitorType = "jenkins"

// Metric paths, relative to the configured prefix.  Per-label, per-job and
// per-view metrics are rooted at "<group>.<identifier>" with the identifier
// taken verbatim from config.
const (
	executorsTotal = "executors.total"
	executorsBusy  = "executors.busy"
	executorsFree  = "executors.free"

	nodesTotal   = "nodes.total"
	nodesOffline = "nodes.offline"
	nodesOnline  = "nodes.online"

	queueSize = "queue.size"

	buildsStartedLastMinute = "builds.started_builds_last_minute"
	buildsStartedLastHour   = "builds.started_builds_last_hour"

	labelsGroup           = "labels"
	labelTiedJobs         = "jobs.tiedJobs"
	labelNodesTotal       = "nodes.total"
	labelExecutorsTotal   = "executors.total"
	labelExecutorsBusy    = "executors.busy"
	labelExecutorsFree    = "executors.free"
	labelExecutorsOffline = "executors.offline"

	jobsGroup     = "jobs"
	jobQueueSize  = "queue.size"
	jobQueueDelay = "queue.delay"
	jobDuration   = "duration"

	viewGroup = "view"
	viewTotal = "total"
	viewOK    = "ok"
	viewFail  = "fail"
	viewWarn  = "warn"
)

// Job colors that count towards the view health metrics.  Anything else
// (blue_anime, disabled, notbuilt, aborted, ...) is counted in none of them.
const (
	colorOK   = "blue"
	colorFail = "red"
	colorWarn = "yellow"
)
