package instrumentation

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentation_Counters(t *testing.T) {
	instr, reg := NewTestInstrumentationAndRegistry()
	require.NotNil(t, instr)

	instr.CounterLogins.Inc()
	instr.CounterLogins.Inc()
	instr.CounterFailedLogins.Inc()
	instr.GaugeSessions.Set(3)

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]*dto.MetricFamily{}
	for _, mf := range metricFamilies {
		byName[mf.GetName()] = mf
	}

	logins := byName["backend_test_server_logins"]
	require.NotNil(t, logins)
	assert.Equal(t, float64(2), logins.GetMetric()[0].GetCounter().GetValue())

	failedLogins := byName["backend_test_server_failed_logins"]
	require.NotNil(t, failedLogins)
	assert.Equal(t, float64(1), failedLogins.GetMetric()[0].GetCounter().GetValue())

	sessions := byName["backend_test_server_current_sessions"]
	require.NotNil(t, sessions)
	assert.Equal(t, float64(3), sessions.GetMetric()[0].GetGauge().GetValue())
}
