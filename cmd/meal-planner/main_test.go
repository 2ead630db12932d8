package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeek(t *testing.T) {
	got, err := parseWeek("", time.Now())
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = parseWeek("2026-10-21", time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.October, got.Month())
	assert.Equal(t, 21, got.Day())

	wednesday := time.Date(2026, time.October, 21, 15, 0, 0, 0, time.UTC)
	got, err = parseWeek("next", wednesday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 26, 0, 0, 0, 0, time.UTC), got)

	_, err = parseWeek("21/10/2026", time.Now())
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = newLogger("loud")
	assert.Error(t, err)
}
