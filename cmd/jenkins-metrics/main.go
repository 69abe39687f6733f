package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/signalfx/jenkins-metrics/pkg/core/config"
	"github.com/signalfx/jenkins-metrics/pkg/core/schedule"
	"github.com/signalfx/jenkins-metrics/pkg/core/writer"
	"github.com/signalfx/jenkins-metrics/pkg/monitors/jenkins"
)

// Version of the tool, set at build time
var Version string

func init() {
	log.SetFormatter(&prefixed.TextFormatter{})
	log.SetLevel(log.InfoLevel)
	log.SetOutput(os.Stdout)
}

// stringSliceFlag is a flag that may be given more than once
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// portFlag is a UDP/TCP port number, values that don't fit in 16 bits are
// rejected at parse time
type portFlag uint16

func (p *portFlag) String() string {
	return strconv.FormatUint(uint64(*p), 10)
}

func (p *portFlag) Set(v string) error {
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return errors.Errorf("%q is not a valid port", v)
	}
	*p = portFlag(n)
	return nil
}

// flags is used to store parsed flag values.  Only the flags that were
// actually given override the config file, see apply.
type flags struct {
	version    bool
	configPath string
	debug      bool

	jenkinsURL      string
	jenkinsUser     string
	jenkinsPassword string
	prefix          string
	labels          stringSliceFlag
	jobs            stringSliceFlag
	view            string
	monitorNodes    bool
	interval        int
	schedule        string

	sink           string
	statsdHost     string
	statsdPort     portFlag
	signalFxToken  string
	ingestURL      string
	pushGatewayURL string

	set  *flag.FlagSet
	seen map[string]bool
}

func newFlagSet(f *flags) *flag.FlagSet {
	set := flag.NewFlagSet("jenkins-metrics", flag.ContinueOnError)

	set.BoolVar(&f.version, "version", false, "print the version and exit")
	set.StringVar(&f.configPath, "config", "", "path of a YAML config file")
	set.BoolVar(&f.debug, "debug", false, "print debugging output")

	set.StringVar(&f.jenkinsURL, "jenkins-url", "", "base url of the Jenkins server (required)")
	set.StringVar(&f.jenkinsUser, "jenkins-user", "", "username for basic auth")
	set.StringVar(&f.jenkinsPassword, "jenkins-password", "", "password for basic auth")
	set.StringVar(&f.prefix, "prefix", config.DefaultPrefix, "prefix of all metric names, may be empty")
	set.Var(&f.labels, "label", "node label to report on, may be repeated")
	set.Var(&f.jobs, "job", "job (folder/name for jobs in folders) to report on, may be repeated")
	set.StringVar(&f.view, "view", "", "view to report job health for")
	set.BoolVar(&f.monitorNodes, "monitor-nodes", false, "report node totals")
	set.IntVar(&f.interval, "interval", 0, "poll every this many seconds instead of once")
	set.StringVar(&f.schedule, "schedule", "", "poll on this cron schedule instead of once")

	set.StringVar(&f.sink, "sink", config.SinkStatsD, "where to send metrics: statsd, signalfx, prometheus or stdout")
	set.StringVar(&f.statsdHost, "statsd-host", "127.0.0.1", "statsd host")
	f.statsdPort = 8125
	set.Var(&f.statsdPort, "statsd-port", "statsd port")
	set.StringVar(&f.signalFxToken, "signalfx-token", "", "SignalFx access token")
	set.StringVar(&f.ingestURL, "ingest-url", "https://ingest.signalfx.com", "SignalFx ingest url")
	set.StringVar(&f.pushGatewayURL, "pushgateway-url", "", "Prometheus Pushgateway url")

	return set
}

// getFlags parses args, which must not include the program name
func getFlags(args []string) (*flags, error) {
	f := &flags{seen: map[string]bool{}}
	f.set = newFlagSet(f)

	if err := f.set.Parse(args); err != nil {
		return nil, err
	}
	if len(f.set.Args()) > 0 {
		return nil, errors.Errorf("non-flag parameters are not accepted: %v", f.set.Args())
	}

	f.set.Visit(func(fl *flag.Flag) {
		f.seen[fl.Name] = true
	})
	return f, nil
}

// apply lays the explicitly given flags over conf
func (f *flags) apply(conf *config.Config) {
	overrides := map[string]func(){
		"jenkins-url":      func() { conf.JenkinsURL = f.jenkinsURL },
		"jenkins-user":     func() { conf.Username = f.jenkinsUser },
		"jenkins-password": func() { conf.Password = f.jenkinsPassword },
		"prefix":           func() { conf.Prefix = &f.prefix },
		"label":            func() { conf.Labels = f.labels },
		"job":              func() { conf.Jobs = f.jobs },
		"view":             func() { conf.View = f.view },
		"monitor-nodes":    func() { conf.MonitorNodes = f.monitorNodes },
		"interval":         func() { conf.IntervalSeconds = f.interval },
		"schedule":         func() { conf.Schedule = f.schedule },
		"sink":             func() { conf.Sink.Type = f.sink },
		"statsd-host":      func() { conf.Sink.StatsDHost = f.statsdHost },
		"statsd-port":      func() { conf.Sink.StatsDPort = uint16(f.statsdPort) },
		"signalfx-token":   func() { conf.Sink.SignalFxAccessToken = f.signalFxToken },
		"ingest-url":       func() { conf.Sink.IngestURL = f.ingestURL },
		"pushgateway-url":  func() { conf.Sink.PushGatewayURL = f.pushGatewayURL },
	}

	for name, override := range overrides {
		if f.seen[name] {
			override()
		}
	}
	if f.debug {
		conf.Logging.Level = "debug"
	}
}

// errMissingURL is returned by loadConfig when no Jenkins url was given
// anywhere, which is treated as a usage error
var errMissingURL = errors.New("a Jenkins url is required, use -jenkins-url or jenkinsURL in the config file")

func loadConfig(f *flags) (*config.Config, error) {
	conf := &config.Config{}
	if f.configPath != "" {
		var err error
		conf, err = config.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
	}

	f.apply(conf)

	if conf.JenkinsURL == "" {
		return nil, errMissingURL
	}

	if err := conf.Finalize(); err != nil {
		return nil, err
	}

	return conf, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	f, err := getFlags(args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		os.Stderr.WriteString(err.Error() + "\n")
		return 2
	}

	if f.version {
		fmt.Printf("jenkins-metrics %s\n", Version)
		return 0
	}

	conf, err := loadConfig(f)
	if err != nil {
		if err == errMissingURL {
			os.Stderr.WriteString(err.Error() + "\n")
			f.set.Usage()
			return 1
		}
		log.WithError(err).Error("Invalid configuration")
		return 1
	}

	if err := conf.Logging.Apply(os.Stdout); err != nil {
		log.WithError(err).Error("Invalid logging configuration")
		return 1
	}

	out, err := writer.New(&conf.Sink)
	if err != nil {
		log.WithError(err).Error("Could not set up the metrics sink")
		return 1
	}
	defer out.Close()

	monitor := &jenkins.Monitor{Output: out}
	if err := monitor.Configure(conf); err != nil {
		log.WithError(err).Error("Could not set up the Jenkins client")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = schedule.Run(ctx, schedule.Config{
		Interval: time.Duration(conf.IntervalSeconds) * time.Second,
		Cron:     conf.Schedule,
	}, func(ctx context.Context) {
		if err := monitor.Collect(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("Could not send metrics")
		}
	})
	if err != nil {
		log.WithError(err).Error("Could not start polling")
		return 1
	}

	return 0
}
