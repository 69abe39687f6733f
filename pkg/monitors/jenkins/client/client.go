package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const apiSuffix = "api/json"

var logger = log.WithFields(log.Fields{"component": "jenkins-client"})

// Client talks to the Jenkins JSON API.  It is safe to reuse across polling
// passes; any session cookies live in the http.Client's jar.
type Client struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
}

// NewClient builds a client for the Jenkins instance at baseURL.  No request
// is made here.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid jenkins url %s", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("jenkins url %s must be absolute, e.g. http://jenkins.example.com", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		BaseURL:    u,
		HTTPClient: httpClient,
	}, nil
}

// FetchAPI fetches the JSON API document of the given resource (e.g.
// "computer" or "job/foo/lastSuccessfulBuild") and deserializes it into obj
func (c *Client) FetchAPI(ctx context.Context, resource string, obj interface{}) error {
	resource = strings.Trim(resource, "/")
	if resource == "" {
		return c.FetchRaw(ctx, apiSuffix, obj)
	}
	return c.FetchRaw(ctx, resource+"/"+apiSuffix, obj)
}

// FetchRaw fetches an arbitrary URL relative to the Jenkins root, which may
// include a query string, and deserializes the JSON body into obj
func (c *Client) FetchRaw(ctx context.Context, relativeURL string, obj interface{}) error {
	u := c.BaseURL.String() + "/" + strings.TrimLeft(relativeURL, "/")

	res, err := c.fetchResponse(ctx, u)
	if err != nil {
		return err
	}
	defer res.Close()

	if err := json.NewDecoder(res).Decode(obj); err != nil {
		return fmt.Errorf("could not decode response of url %s: %v", u, err)
	}
	return nil
}

// fetchResponse takes a URL and returns a reader over the body; the caller
// must close it
func (c *Client) fetchResponse(ctx context.Context, u string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request for url %s: %v", u, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not get url %s: %v", u, err)
	}
	if res.StatusCode != 200 {
		body, _ := ioutil.ReadAll(io.LimitReader(res.Body, 512))
		res.Body.Close()
		return nil, fmt.Errorf("received status code that's not 200: %s , url: %s , body: %s", res.Status, u, string(body))
	}
	return res.Body, nil
}

// fetchOrEmpty is the degrade-to-empty wrapper used by the typed accessors:
// any failure is logged and obj is reset to its zero value, so callers always
// get a usable (possibly empty) record.
func fetchOrEmpty(ctx context.Context, fetch func(context.Context, string, interface{}) error, path string, obj interface{}, reset func()) {
	if err := fetch(ctx, path, obj); err != nil {
		reset()
		entry := logger.WithError(err).WithField("path", path)
		if ctx.Err() != nil {
			entry.Debug("Jenkins request aborted")
			return
		}
		entry.Warn("Unable to get jenkins response, using empty data")
	}
}

// Computers returns the executor/computer listing
func (c *Client) Computers(ctx context.Context) ComputerSet {
	var out ComputerSet
	fetchOrEmpty(ctx, c.FetchAPI, "computer", &out, func() { out = ComputerSet{} })
	return out
}

// Queue returns the current build queue
func (c *Client) Queue(ctx context.Context) Queue {
	var out Queue
	fetchOrEmpty(ctx, c.FetchAPI, "queue", &out, func() { out = Queue{} })
	return out
}

// Timeline returns the builds started in view between from and to, both in
// epoch milliseconds
func (c *Client) Timeline(ctx context.Context, view string, from, to int64) Timeline {
	var out Timeline
	path := fmt.Sprintf("view/%s/timeline/data?min=%d&max=%d", url.PathEscape(view), from, to)
	fetchOrEmpty(ctx, c.FetchRaw, path, &out, func() { out = Timeline{} })
	return out
}

// Label returns the executor and node info of a node label
func (c *Client) Label(ctx context.Context, label string) Label {
	var out Label
	fetchOrEmpty(ctx, c.FetchAPI, "label/"+url.PathEscape(label), &out, func() { out = Label{} })
	return out
}

// LastSuccessfulBuild returns the last successful build of a job
func (c *Client) LastSuccessfulBuild(ctx context.Context, job string) Build {
	var out Build
	fetchOrEmpty(ctx, c.FetchAPI, JobPath(job)+"/lastSuccessfulBuild", &out, func() { out = Build{} })
	return out
}

// JobPath returns the URL path of a job given its full name.  Jobs inside
// folders are addressed as "folder/name", which Jenkins serves under
// job/folder/job/name.
func JobPath(fullName string) string {
	parts := strings.Split(strings.Trim(fullName, "/"), "/")
	for i := range parts {
		parts[i] = "job/" + url.PathEscape(parts[i])
	}
	return strings.Join(parts, "/")
}

// View returns the jobs listed in a view
func (c *Client) View(ctx context.Context, view string) View {
	var out View
	fetchOrEmpty(ctx, c.FetchAPI, "view/"+url.PathEscape(view), &out, func() { out = View{} })
	return out
}
