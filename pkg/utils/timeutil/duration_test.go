package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestDurationYAML(t *testing.T) {
	var out struct {
		Timeout Duration `yaml:"timeout"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("timeout: 1m30s"), &out))
	require.Equal(t, 90*time.Second, out.Timeout.AsDuration())

	require.Error(t, yaml.Unmarshal([]byte("timeout: soon"), &out))

	rendered, err := yaml.Marshal(out)
	require.NoError(t, err)
	require.Equal(t, "timeout: 1m30s\n", string(rendered))
}

func TestDurationJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"10s"`), &d))
	require.Equal(t, 10*time.Second, d.AsDuration())

	require.NoError(t, json.Unmarshal([]byte(`1000000`), &d))
	require.Equal(t, time.Millisecond, d.AsDuration())

	require.Error(t, json.Unmarshal([]byte(`true`), &d))
}
