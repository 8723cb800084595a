package chainutils

import (
	"os"

	"github.com/storynet-labs/storynet/internal/subtensor"
)

// FindAxonByHotkey returns the axon registered for the hotkey, or nil when
// the hotkey is not in the metagraph.
func FindAxonByHotkey(metagraph *subtensor.SubnetMetagraph, hotkey string) *subtensor.AxonInfo {
	for i, currHotkey := range metagraph.Hotkeys {
		if currHotkey == hotkey {
			if i >= len(metagraph.Axons) {
				return nil
			}
			axon := metagraph.Axons[i]
			return &axon
		}
	}
	return nil
}

// GetColdkeyForHotkey resolves a hotkey's owning coldkey from the metagraph.
func GetColdkeyForHotkey(metagraph *subtensor.SubnetMetagraph, hotkey string) string {
	for uid, h := range metagraph.Hotkeys {
		if h == hotkey && uid < len(metagraph.Coldkeys) {
			return metagraph.Coldkeys[uid]
		}
	}
	return ""
}

// CheckIfMiner reports whether a uid's stake profile marks it as a miner
// rather than a validator. Root stake counts at 18% toward effective stake.
func CheckIfMiner(alphaStake, rootStake float64) bool {
	effectiveStake := alphaStake + rootStake*0.18

	var stakeFilter float64
	if os.Getenv("ENVIRONMENT") != "prod" {
		stakeFilter = 1000
	} else {
		stakeFilter = 10000
	}

	return effectiveStake < stakeFilter
}
