package safety

import (
	"context"
	"errors"
	"testing"

	"memecoin-radar/internal/infra/log"
	"memecoin-radar/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubOwners struct {
	owner string
	err   error
	calls int
}

func (s *stubOwners) GetTokenOwner(ctx context.Context, address string) (string, error) {
	s.calls++
	return s.owner, s.err
}

type stubPools struct {
	pools []models.PoolInfo
	err   error
	calls int
}

func (s *stubPools) GetPools(ctx context.Context, address string) ([]models.PoolInfo, error) {
	s.calls++
	return s.pools, s.err
}

func TestRenouncedOwnerIsSystemProgram(t *testing.T) {
	assert.Equal(t, "11111111111111111111111111111111", RenouncedOwner)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		owners *stubOwners
		pools  *stubPools
		want   models.SafetyAssessment
	}{
		{
			name:   "renounced and locked",
			owners: &stubOwners{owner: RenouncedOwner},
			pools:  &stubPools{pools: []models.PoolInfo{{Locked: false}, {Locked: true}}},
			want:   models.SafetyAssessment{OwnershipRenounced: true, LiquidityLocked: true},
		},
		{
			name:   "other owner",
			owners: &stubOwners{owner: "So11111111111111111111111111111111111111112"},
			pools:  &stubPools{pools: []models.PoolInfo{{Locked: true}}},
			want:   models.SafetyAssessment{LiquidityLocked: true},
		},
		{
			name:   "missing owner",
			owners: &stubOwners{owner: ""},
			pools:  &stubPools{pools: []models.PoolInfo{{Locked: true}}},
			want:   models.SafetyAssessment{LiquidityLocked: true},
		},
		{
			name:   "no pools",
			owners: &stubOwners{owner: RenouncedOwner},
			pools:  &stubPools{},
			want:   models.SafetyAssessment{OwnershipRenounced: true},
		},
		{
			name:   "no pool locked",
			owners: &stubOwners{owner: RenouncedOwner},
			pools:  &stubPools{pools: []models.PoolInfo{{Locked: false}, {Locked: false}}},
			want:   models.SafetyAssessment{OwnershipRenounced: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(tt.owners, tt.pools)
			assert.Equal(t, tt.want, checker.Check(context.Background(), "X"))
		})
	}
}

func TestCheckOwnershipFailureIsAllFalse(t *testing.T) {
	owners := &stubOwners{err: errors.New("timeout")}
	pools := &stubPools{pools: []models.PoolInfo{{Locked: true}}}

	got := NewChecker(owners, pools).Check(context.Background(), "X")

	assert.Equal(t, models.SafetyAssessment{OwnershipRenounced: false, LiquidityLocked: false}, got)
	assert.Equal(t, 0, pools.calls, "pool lookup runs only after ownership succeeded")
}

func TestCheckPoolFailureDiscardsOwnership(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	orig := log.Logger
	log.Logger = zap.New(core)
	t.Cleanup(func() { log.Logger = orig })

	owners := &stubOwners{owner: RenouncedOwner}
	pools := &stubPools{err: errors.New("malformed response")}

	got := NewChecker(owners, pools).Check(context.Background(), "X")

	assert.Equal(t, models.SafetyAssessment{}, got)
	assert.False(t, got.Safe())

	failures := logs.FilterMessage("Safety check failed: pool lookup").All()
	if assert.Len(t, failures, 1) {
		assert.Equal(t, "X", failures[0].ContextMap()["address"])
	}
}
