package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIntervalJob(t *testing.T) {
	sched, err := NewScheduler()
	require.NoError(t, err)
	defer sched.Shutdown()

	j, err := AddIntervalJob(sched, "payment-sweep", time.Hour, func() {})
	require.NoError(t, err)

	assert.Equal(t, "payment-sweep", j.Name())
	assert.Len(t, sched.Jobs(), 1)
}
