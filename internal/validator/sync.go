package validator

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/internal/scheduler"
	"github.com/storynet-labs/storynet/internal/utils/chainutils"
)

// syncBlock refreshes the latest block and fires any block-counted
// callbacks that are due.
func (v *Validator) syncBlock() {
	newBlockResp, err := v.Chain.GetLatestBlock()
	if err != nil {
		log.Error().Err(err).Msg("failed to get latest block")
		return
	}

	v.mu.Lock()
	v.LatestBlock = int64(newBlockResp.Data.BlockNumber)
	currentBlock := int(v.LatestBlock)
	v.mu.Unlock()

	for _, cb := range []*scheduler.BlockCallback{v.metagraphCallback, v.weightsCallback} {
		if cb == nil || !cb.ShouldTrigger(currentBlock) {
			continue
		}
		if err := cb.Execute(); err != nil {
			log.Error().Err(err).Str("callback", cb.GetName()).Msg("block callback failed")
			continue
		}
		cb.LastTriggerAtBlock = currentBlock
	}
}

// syncMetagraph refreshes the metagraph and recomputes the active miner set
// from stake profiles.
func (v *Validator) syncMetagraph() error {
	log.Info().Msgf("syncing metagraph data for subnet: %d", v.Config.Netuid)

	newMetagraph, err := v.Chain.GetMetagraph(v.Config.Netuid)
	if err != nil {
		return fmt.Errorf("failed to get metagraph: %w", err)
	}

	var currentActiveMiners []int64
	for uid := range newMetagraph.Data.Hotkeys {
		if uid >= len(newMetagraph.Data.AlphaStake) || uid >= len(newMetagraph.Data.TaoStake) {
			break
		}
		rootStake := newMetagraph.Data.TaoStake[uid]
		alphaStake := newMetagraph.Data.AlphaStake[uid]

		if chainutils.CheckIfMiner(alphaStake, rootStake) {
			currentActiveMiners = append(currentActiveMiners, int64(uid))
		}
	}

	log.Info().Msgf("Metagraph synced. Found %d active miners with uid: %v", len(currentActiveMiners), currentActiveMiners)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.MetagraphData.Metagraph = newMetagraph.Data
	v.MetagraphData.CurrentActiveMinerUids = currentActiveMiners
	return nil
}
