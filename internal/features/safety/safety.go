package safety

// Rug-pull heuristic for a freshly listed token: is the mint owner the system
// program (ownership renounced), and is at least one liquidity pool locked.
// Both lookups run in order; any failure yields the all-false assessment.

import (
	"context"

	"memecoin-radar/internal/infra/log"
	"memecoin-radar/internal/models"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// RenouncedOwner is the address nobody controls: 11111111111111111111111111111111.
var RenouncedOwner = solana.SystemProgramID.String()

type OwnershipSource interface {
	GetTokenOwner(ctx context.Context, address string) (string, error)
}

type PoolSource interface {
	GetPools(ctx context.Context, address string) ([]models.PoolInfo, error)
}

type Checker struct {
	owners OwnershipSource
	pools  PoolSource
}

func NewChecker(owners OwnershipSource, pools PoolSource) *Checker {
	return &Checker{owners: owners, pools: pools}
}

// Check never fails. A lookup error returns the zero assessment, never a partial one.
func (c *Checker) Check(ctx context.Context, address string) models.SafetyAssessment {
	owner, err := c.owners.GetTokenOwner(ctx, address)
	if err != nil {
		log.LogWarn("Safety check failed: ownership lookup",
			zap.String("address", address),
			zap.Error(err))
		return models.SafetyAssessment{}
	}

	pools, err := c.pools.GetPools(ctx, address)
	if err != nil {
		log.LogWarn("Safety check failed: pool lookup",
			zap.String("address", address),
			zap.Error(err))
		return models.SafetyAssessment{}
	}

	assessment := models.SafetyAssessment{
		OwnershipRenounced: owner == RenouncedOwner,
		LiquidityLocked:    anyLocked(pools),
	}

	log.LogDebug("Safety check done",
		zap.String("address", address),
		zap.String("owner", owner),
		zap.Int("pools", len(pools)),
		zap.Bool("renounced", assessment.OwnershipRenounced),
		zap.Bool("lpLocked", assessment.LiquidityLocked))

	return assessment
}

func anyLocked(pools []models.PoolInfo) bool {
	for _, pool := range pools {
		if pool.Locked {
			return true
		}
	}
	return false
}
