package client

import "encoding/json"

// ComputerSet is the response of /computer/api/json
type ComputerSet struct {
	TotalExecutors int64      `json:"totalExecutors"`
	BusyExecutors  int64      `json:"busyExecutors"`
	Computers      []Computer `json:"computer"`
}

// Computer is a single node attached to the master.  DisplayName and
// NodeName are distinct fields; the built-in node has an empty NodeName, for
// example.
type Computer struct {
	DisplayName string `json:"displayName"`
	NodeName    string `json:"nodeName"`
	Offline     bool   `json:"offline"`
}

// Queue is the response of /queue/api/json
type Queue struct {
	Items []QueueItem `json:"items"`
}

// QueueItem is a build waiting for an executor
type QueueItem struct {
	Task *QueueTask `json:"task"`
	// Epoch millis, nil when Jenkins did not report it
	InQueueSince *int64 `json:"inQueueSince"`
}

// QueueTask identifies the job a queue item belongs to
type QueueTask struct {
	Name string `json:"name"`
}

// TaskName returns the name of the queued job, or "" if there isn't one
func (qi QueueItem) TaskName() string {
	if qi.Task == nil {
		return ""
	}
	return qi.Task.Name
}

// Timeline is the response of the timeline data endpoint.  Only the number of
// events is of interest.
type Timeline struct {
	Events []json.RawMessage `json:"events"`
}

// Label is the response of /label/<name>/api/json
type Label struct {
	TotalExecutors int64             `json:"totalExecutors"`
	BusyExecutors  int64             `json:"busyExecutors"`
	TiedJobs       []json.RawMessage `json:"tiedJobs"`
	Nodes          []LabelNode       `json:"nodes"`
}

// LabelNode is a node that carries a label
type LabelNode struct {
	NodeName string `json:"nodeName"`
}

// NodeNames returns the nodeName of every node of the label, in order
func (l Label) NodeNames() []string {
	names := make([]string, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		names = append(names, n.NodeName)
	}
	return names
}

// View is the response of /view/<name>/api/json
type View struct {
	Jobs []ViewJob `json:"jobs"`
}

// ViewJob is a job listed in a view.  Color encodes the health of the last
// build: blue, red, yellow, plus suffixes/values like blue_anime, disabled,
// notbuilt.
type ViewJob struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Build is the response of /job/<name>/<build>/api/json
type Build struct {
	// Duration in millis, nil when the job has no such build
	Duration *int64 `json:"duration"`
}
