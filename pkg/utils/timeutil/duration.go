package timeutil

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Duration is a time.Duration that is read from YAML as a duration string
// like "10s" or "1m30s"
type Duration time.Duration

// AsDuration returns the value as a time.Duration
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML parses duration strings
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}

	dur, err := time.ParseDuration(str)
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", str)
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML renders the duration in its string form
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalJSON parses duration strings, or integers as nanoseconds
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case float64:
		*d = Duration(time.Duration(val))
		return nil
	case string:
		dur, err := time.ParseDuration(val)
		if err != nil {
			return errors.Wrapf(err, "invalid duration %q", val)
		}
		*d = Duration(dur)
		return nil
	default:
		return errors.Errorf("invalid duration %v", v)
	}
}
