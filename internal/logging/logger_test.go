package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGetLevel(t *testing.T) {
	for levelStr, expected := range map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"info":  logrus.InfoLevel,
		"trace": logrus.TraceLevel,
		"warn":  logrus.WarnLevel,
		"WARN":  logrus.WarnLevel,
		"bogus": logrus.TraceLevel,
		"":      logrus.TraceLevel,
	} {
		assert.Equal(t, expected, GetLevel(levelStr), levelStr)
	}
}

func TestSentryHookLevels(t *testing.T) {
	hook := NewSentryHook([]logrus.Level{logrus.ErrorLevel, logrus.FatalLevel})
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel}, hook.Levels())
}
