package testutil_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/internal/testutil"
)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	require.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)

	logger.Clear()
	assert.Empty(t, logger.GetMessages())

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestMockLogger_DerivedLoggersShareRecord(t *testing.T) {
	root := testutil.NewMockLogger()
	child := root.Named("planner").Named("perm").With(logging.Cluster(3))

	child.Warn("plan aborted", logging.String("reason", "no site"))

	msg, ok := root.Find("warn", "plan aborted")
	require.True(t, ok)
	assert.Equal(t, "planner.perm", msg.Name)
	v, ok := msg.Field(logging.KeyCluster)
	require.True(t, ok)
	assert.Equal(t, 3, v)
	v, _ = msg.Field("reason")
	assert.Equal(t, "no site", v)

	root.Info("unbound")
	msg, _ = root.Find("info", "unbound")
	assert.Empty(t, msg.Name)
	assert.Empty(t, msg.Fields)
}

func TestMockLogger_Concurrent(t *testing.T) {
	logger := testutil.NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.With(logging.Int("i", i)).Debug("tick")
		}(i)
	}
	wg.Wait()
	assert.Len(t, logger.GetMessages(), 16)
}

func TestDipeptideLedger(t *testing.T) {
	l := testutil.DipeptideLedger(t)
	require.NoError(t, l.Validate())
	assert.Equal(t, 7, l.DomainCount())
}

//Personal.AI order the ending
