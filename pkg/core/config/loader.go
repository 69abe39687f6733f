package config

import (
	"io/ioutil"
	"os"
	"regexp"

	"github.com/pkg/errors"
	"github.com/signalfx/defaults"
	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"
)

// LoadConfig reads the YAML config file at configPath.  Defaults are not
// applied yet so that command line flags can still be laid over the result,
// see Finalize.
func LoadConfig(configPath string) (*Config, error) {
	content, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config file %s", configPath)
	}

	conf, err := LoadYAML(content)
	if err != nil {
		return nil, errors.WithMessagef(err, "config file %s is invalid", configPath)
	}
	return conf, nil
}

// LoadYAML parses the given config file content.  Unknown keys are an error.
func LoadYAML(content []byte) (*Config, error) {
	conf := &Config{}

	if err := yaml.UnmarshalStrict(preprocessConfig(content), conf); err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}

	return conf, nil
}

// Finalize fills in defaults for anything left unset and validates the
// result
func (c *Config) Finalize() error {
	if err := defaults.Set(c); err != nil {
		return errors.Wrap(err, "config defaults are wrong types")
	}
	return c.Validate()
}

var envVarRE = regexp.MustCompile(`\${\s*([\w-]+?)\s*}`)

// Replaces envvar syntax with the actual envvars
func preprocessConfig(content []byte) []byte {
	return envVarRE.ReplaceAllFunc(content, func(bs []byte) []byte {
		parts := envVarRE.FindSubmatch(bs)
		envvar := string(parts[1])

		log.WithFields(log.Fields{
			"envvar": envvar,
		}).Debug("Substituting envvar in config")

		return []byte(os.Getenv(envvar))
	})
}
