package analysis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/bgc-scaffold/internal/config"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

func TestBuild_Defaults(t *testing.T) {
	cfg := config.Default()
	cfg.Limits.MaxPlans = 9
	svc, err := Build(cfg, nil, nil)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, 9, svc.Limits().MaxPlans)
	assert.NoError(t, svc.Ready(context.Background()))
}

func TestBuild_WithCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Cache.Enabled = true
	cfg.Cache.Addr = mr.Addr()

	svc, err := Build(cfg, nil, nil)
	require.NoError(t, err)
	defer svc.Close()

	res, err := svc.Analyze(context.Background(), &AnalyzeInput{Ledger: loadLedger(t, dipeptide)})
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.NotEmpty(t, mr.Keys())

	mr.Close()
	err = svc.Ready(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
}

func TestBuild_CacheUnreachable(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Enabled = true
	cfg.Cache.Addr = "127.0.0.1:1"

	_, err := Build(cfg, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
}

//Personal.AI order the ending
