package main

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/storynet-labs/storynet/internal/config"
	"github.com/storynet-labs/storynet/internal/scoring"
	"github.com/storynet-labs/storynet/internal/subtensor"
	"github.com/storynet-labs/storynet/internal/utils/chainutils"
)

// burnUid receives the full weight when emissions should be burned.
const burnUid = 0

type scoresFile struct {
	Step    int       `json:"step"`
	Hotkeys []string  `json:"hotkeys"`
	Scores  []float64 `json:"scores"`
}

type model struct {
	choices       []string
	cursor        int
	selectedIndex int // single selection index; -1 until chosen
	chain         subtensor.ChainClient
	cfg           *config.AppConfig
}

func initialModel() *model {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	chain, err := subtensor.NewClient(&cfg.GatewayEnvConfig)
	if err != nil {
		fmt.Printf("Error initializing subtensor client: %v\n", err)
		os.Exit(1)
	}

	return &model{
		choices:       []string{"Set 100% burn weight", "Set scores weight", "Show scores"},
		cursor:        0,
		selectedIndex: -1,
		chain:         chain,
		cfg:           cfg,
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) { //nolint
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}

		case "enter":
			m.selectedIndex = m.cursor
			switch m.selectedIndex {
			case 0:
				fmt.Printf("Setting 100%% burn weight to uid %d\n", burnUid)

				res, err := m.chain.SetWeights(subtensor.SetWeightsParams{
					Netuid:     m.cfg.Netuid,
					Dests:      []int{burnUid},
					Weights:    []int{chainutils.U16Max},
					VersionKey: 1,
				})
				if err != nil {
					fmt.Printf("Error setting weights: %v\n", err)
					return m, tea.Quit
				}

				fmt.Printf("Successfully set burn weights with hash: %s\n", res.Data)
			case 1:
				fmt.Println("Setting scores weight")

				scores, err := readScores(m.cfg.ScoresFile)
				if err != nil {
					fmt.Println(err)
					return m, tea.Quit
				}

				uids := make([]int64, len(scores.Scores))
				for i := range uids {
					uids[i] = int64(i)
				}

				weights := chainutils.ClampNegativeWeights(scores.Scores)

				convertedUids, convertedWeights, err := chainutils.ConvertWeightsAndUidsForEmit(uids, weights)
				if err != nil {
					fmt.Printf("Error converting weights and uids: %v\n", err)
					return m, tea.Quit
				}

				res, err := m.chain.SetWeights(subtensor.SetWeightsParams{
					Netuid:     m.cfg.Netuid,
					Dests:      convertedUids,
					Weights:    convertedWeights,
					VersionKey: 1,
				})
				if err != nil {
					fmt.Printf("Error setting weights: %v\n", err)
					return m, tea.Quit
				}

				fmt.Printf("Successfully set weights with hash: %s\n", res.Data)
			case 2:
				scores, err := readScores(m.cfg.ScoresFile)
				if err != nil {
					fmt.Println(err)
					return m, tea.Quit
				}

				scaled := scoring.MinMaxScale(scores.Scores)

				fmt.Printf("Step %d, %d hotkeys (score / relative)\n", scores.Step, len(scores.Hotkeys))
				for i, hk := range scores.Hotkeys {
					if i < len(scores.Scores) {
						fmt.Printf("  uid %-4d %s  %.4f / %.4f\n", i, hk, scores.Scores[i], scaled[i])
					}
				}
			default:
				fmt.Println("Unknown selection")
			}

			return m, tea.Quit
		}
	}

	return m, nil
}

func readScores(path string) (scoresFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scoresFile{}, fmt.Errorf("failed to read scores file: %w", err)
	}

	var scores scoresFile
	if err := sonic.Unmarshal(data, &scores); err != nil {
		return scoresFile{}, fmt.Errorf("failed to unmarshal scores file data: %w", err)
	}
	return scores, nil
}

func (m *model) View() string {
	s := "Select an option:\n\n"

	for i, choice := range m.choices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		s += fmt.Sprintf("%s %s\n", cursor, choice)
	}

	s += "\nPress q to quit.\n"
	return s
}

func (m *model) Init() tea.Cmd {
	return nil
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
