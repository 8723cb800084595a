package validator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/internal/scoring"
	"github.com/storynet-labs/storynet/internal/subtensor"
	"github.com/storynet-labs/storynet/internal/synapse"
)

const probeTimeout = 12 * time.Second

// sendProbeRound probes every active miner's axon once, folds the results
// into the running scores, and records the round in redis.
func (v *Validator) sendProbeRound() {
	if !v.probeRoundRunning.CompareAndSwap(false, true) {
		return
	}
	defer v.probeRoundRunning.Store(false)

	v.mu.Lock()
	metagraph := v.MetagraphData.Metagraph
	uids := make([]int64, len(v.MetagraphData.CurrentActiveMinerUids))
	copy(uids, v.MetagraphData.CurrentActiveMinerUids)
	v.mu.Unlock()

	if len(uids) == 0 {
		log.Info().Msg("no active miners, skipping probe round")
		return
	}
	if metagraph.Hotkeys == nil {
		log.Info().Msg("metagraph not synced yet, skipping probe round")
		return
	}

	log.Info().Msgf("Starting probe round: miners active %d", len(uids))

	outcomes := v.probeMiners(metagraph, uids)
	v.recordProbeHistory(outcomes)

	results := make([]scoring.ProbeResult, 0, len(outcomes))
	for _, o := range outcomes {
		results = append(results, scoring.ProbeResult{
			Hotkey:  o.Hotkey,
			Success: o.Success,
			Latency: o.Latency,
		})
	}

	roundScores := scoring.ScoreRound(results)
	if err := v.updateScores(metagraph.Hotkeys, roundScores); err != nil {
		log.Error().Err(err).Msg("failed to update scores")
		return
	}

	log.Info().Msgf("Probe round completed at step %d", v.LatestScoresData.Step)
}

// probeMiners sends heartbeats to the given uids concurrently.
func (v *Validator) probeMiners(metagraph subtensor.SubnetMetagraph, uids []int64) []probeOutcome {
	outcomes := make([]probeOutcome, len(uids))

	var wg sync.WaitGroup
	wg.Add(len(uids))
	for i, uid := range uids {
		go func(index int, uid int64) {
			defer wg.Done()
			outcomes[index] = v.probeMiner(metagraph, uid)
		}(i, uid)
	}
	wg.Wait()

	return outcomes
}

func (v *Validator) probeMiner(metagraph subtensor.SubnetMetagraph, uid int64) probeOutcome {
	outcome := probeOutcome{UID: uid}

	if uid < 0 || int(uid) >= len(metagraph.Hotkeys) {
		return outcome
	}
	outcome.Hotkey = metagraph.Hotkeys[uid]

	if int(uid) >= len(metagraph.Axons) {
		return outcome
	}
	axon := metagraph.Axons[uid]
	if axon.IP == "" || axon.Port == 0 {
		log.Debug().Int64("uid", uid).Msg("miner has no served axon")
		return outcome
	}

	ctx, cancel := context.WithTimeout(v.Ctx, probeTimeout)
	defer cancel()

	req := synapse.HeartbeatRequest{
		ValidatorHotkey: v.ValidatorHotkey,
		Timestamp:       time.Now().Unix(),
	}

	baseURL := fmt.Sprintf("http://%s:%d", axon.IP, axon.Port)
	resp, latency, err := v.Prober.ProbeAxon(ctx, baseURL, req)
	if err != nil {
		log.Debug().Err(err).Int64("uid", uid).Str("axon", baseURL).Msg("probe failed")
		outcome.Latency = latency
		return outcome
	}

	if resp.MinerHotkey != "" && resp.MinerHotkey != outcome.Hotkey {
		log.Warn().
			Int64("uid", uid).
			Str("expected", outcome.Hotkey).
			Str("got", resp.MinerHotkey).
			Msg("miner responded with a different hotkey")
		return outcome
	}

	outcome.Success = true
	outcome.Latency = latency
	return outcome
}

// recordProbeHistory pushes the round's outcomes into a capped redis list.
func (v *Validator) recordProbeHistory(outcomes []probeOutcome) {
	if v.Redis == nil {
		return
	}

	payload, err := sonic.Marshal(outcomes)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal probe history")
		return
	}

	if err := v.Redis.LPush(v.Ctx, redisProbeHistoryKey, string(payload)); err != nil {
		log.Error().Err(err).Msg("failed to record probe history")
		return
	}
	if err := v.Redis.LTrim(v.Ctx, redisProbeHistoryKey, 0, probeHistoryMaxLen-1); err != nil {
		log.Error().Err(err).Msg("failed to trim probe history")
	}
}
