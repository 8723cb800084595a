package validator

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/internal/scoring"
)

// loadScores reads persisted scores, creating an empty scores file when none
// exists yet.
func loadScores(path string) (ScoresData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return ScoresData{}, fmt.Errorf("failed to read scores file: %w", err)
		}

		log.Info().Str("path", path).Msg("scores file not found, initializing with default scores")
		if err := writeScores(path, ScoresData{}); err != nil {
			return ScoresData{}, err
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return ScoresData{}, fmt.Errorf("failed to read newly created scores file: %w", err)
		}
	}

	var scores ScoresData
	if err := sonic.Unmarshal(data, &scores); err != nil {
		return ScoresData{}, fmt.Errorf("failed to unmarshal scores file: %w", err)
	}
	return scores, nil
}

func writeScores(path string, scores ScoresData) error {
	data, err := sonic.Marshal(scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scores file: %w", err)
	}
	return nil
}

// updateScores realigns the persisted scores to the current metagraph
// hotkeys and folds the new round in with an EMA. A hotkey that left the
// metagraph loses its score; a new registration starts from zero.
func (v *Validator) updateScores(hotkeys []string, roundScores scoring.RoundScores) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	previous := make(map[string]float64, len(v.LatestScoresData.Hotkeys))
	for i, hk := range v.LatestScoresData.Hotkeys {
		if i < len(v.LatestScoresData.Scores) {
			previous[hk] = v.LatestScoresData.Scores[i]
		}
	}

	newHotkeys := make([]string, len(hotkeys))
	copy(newHotkeys, hotkeys)

	newScores := make([]float64, len(hotkeys))
	for i, hk := range hotkeys {
		prevScore := previous[hk]
		if observed, probed := roundScores[hk]; probed {
			newScores[i] = scoring.UpdateEMA(prevScore, observed, scoring.EMAAlpha)
		} else {
			newScores[i] = prevScore
		}
	}

	v.LatestScoresData = ScoresData{
		Step:    v.LatestScoresData.Step + 1,
		Hotkeys: newHotkeys,
		Scores:  newScores,
	}

	return writeScores(v.Config.ScoresFile, v.LatestScoresData)
}
