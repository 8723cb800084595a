package validator

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/internal/scoring"
	"github.com/storynet-labs/storynet/internal/subtensor"
	"github.com/storynet-labs/storynet/internal/utils/chainutils"
)

// weightsVersionKey identifies the weight encoding submitted to the chain.
const weightsVersionKey = 1

// submitWeights converts the current scores to u16 chain weights and
// submits them. It runs as a block callback every WeightBlocks blocks.
func (v *Validator) submitWeights() error {
	v.mu.Lock()
	scoresData := v.LatestScoresData
	v.mu.Unlock()

	if scoresData.Step == 0 || len(scoresData.Scores) == 0 {
		log.Info().Msg("no scores accumulated yet, skipping weight submission")
		return nil
	}

	uids := make([]int64, len(scoresData.Scores))
	for i := range uids {
		uids[i] = int64(i)
	}

	weights := chainutils.ClampNegativeWeights(scoresData.Scores)
	weights = scoring.L1Normalize(weights)

	emitUids, emitWeights, err := chainutils.ConvertWeightsAndUidsForEmit(uids, weights)
	if err != nil {
		return fmt.Errorf("failed to convert weights: %w", err)
	}
	if len(emitUids) == 0 {
		log.Info().Msg("all weights are zero, skipping weight submission")
		return nil
	}

	resp, err := v.Chain.SetWeights(subtensor.SetWeightsParams{
		Netuid:     v.Config.Netuid,
		Dests:      emitUids,
		Weights:    emitWeights,
		VersionKey: weightsVersionKey,
	})
	if err != nil {
		return fmt.Errorf("failed to set weights: %w", err)
	}

	log.Info().
		Str("extrinsic", resp.Data).
		Int("uids", len(emitUids)).
		Int("step", scoresData.Step).
		Msg("weights submitted")
	return nil
}
