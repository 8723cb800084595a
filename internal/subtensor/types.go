package subtensor

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Response is the uniform envelope returned by every gateway endpoint.
type Response[T any] struct {
	StatusCode int            `json:"statusCode"`
	Success    bool           `json:"success"`
	Data       T              `json:"data"`
	Error      map[string]any `json:"error"`
}

type (
	SubnetMetagraphResponse   = Response[SubnetMetagraph]
	LatestBlockResponse       = Response[LatestBlock]
	KeyringPairInfoResponse   = Response[KeyringPairInfo]
	SubnetHyperparamsResponse = Response[SubnetHyperparams]
	SignMessageResponse       = Response[SignMessage]
	VerifyMessageResponse     = Response[VerifyMessage]
	ExtrinsicHashResponse     = Response[string]
)

// HexOrInt handles chain fields that arrive either as a JSON number or as
// a hex/decimal string. Values can exceed 64 bits, so it carries a big.Int.
type HexOrInt struct {
	Value *big.Int
}

func (h *HexOrInt) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		h.Value = big.NewInt(0)
		return nil
	}

	var s string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		h.Value = big.NewInt(0)
		return nil
	}

	v := new(big.Int)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if _, ok := v.SetString(s[2:], 16); !ok {
			return fmt.Errorf("invalid hex integer: %s", s)
		}
	} else {
		if _, ok := v.SetString(s, 10); !ok {
			return fmt.Errorf("invalid decimal integer: %s", s)
		}
	}
	h.Value = v
	return nil
}

// SubnetMetagraph is the gateway's view of the subnet: per-uid hotkeys,
// axons, stake, and the hyperparameter snapshot the validator needs.
type SubnetMetagraph struct {
	Netuid              int            `json:"netuid"`
	Name                string         `json:"name"`
	Symbol              string         `json:"symbol"`
	Identity            SubnetIdentity `json:"identity"`
	OwnerHotkey         string         `json:"ownerHotkey"`
	OwnerColdkey        string         `json:"ownerColdkey"`
	Block               int            `json:"block"`
	Tempo               int            `json:"tempo"`
	SubnetEmission      float64        `json:"subnetEmission"`
	Rho                 float64        `json:"rho"`
	Kappa               float64        `json:"kappa"`
	MinAllowedWeights   int            `json:"minAllowedWeights"`
	MaxAllowedWeights   int            `json:"maxAllowedWeights"`
	WeightsVersion      int            `json:"weightsVersion"`
	WeightsRateLimit    int            `json:"weightsRateLimit"`
	ActivityCutoff      int            `json:"activityCutoff"`
	MaxValidators       int            `json:"maxValidators"`
	NumUids             int            `json:"numUids"`
	MaxUids             int            `json:"maxUids"`
	Burn                float64        `json:"burn"`
	Difficulty          HexOrInt       `json:"difficulty"`
	RegistrationAllowed bool           `json:"registrationAllowed"`
	ImmunityPeriod      int            `json:"immunityPeriod"`
	ServingRateLimit    int            `json:"servingRateLimit"`
	Hotkeys             []string       `json:"hotkeys"`
	Coldkeys            []string       `json:"coldkeys"`
	Axons               []AxonInfo     `json:"axons"`
	Active              []bool         `json:"active"`
	ValidatorPermit     []bool         `json:"validatorPermit"`
	LastUpdate          []int          `json:"lastUpdate"`
	Emission            []float64      `json:"emission"`
	Dividends           []float64      `json:"dividends"`
	Incentives          []float64      `json:"incentives"`
	Consensus           []float64      `json:"consensus"`
	Trust               []float64      `json:"trust"`
	Rank                []float64      `json:"rank"`
	BlockAtRegistration []int          `json:"blockAtRegistration"`
	AlphaStake          []float64      `json:"alphaStake"`
	TaoStake            []float64      `json:"taoStake"`
	TotalStake          []float64      `json:"totalStake"`
}

type SubnetIdentity struct {
	SubnetName    string `json:"subnetName"`
	GithubRepo    string `json:"githubRepo"`
	SubnetContact string `json:"subnetContact"`
	SubnetURL     string `json:"subnetUrl"`
	Discord       string `json:"discord"`
	Description   string `json:"description"`
	Additional    string `json:"additional"`
}

type AxonInfo struct {
	Block        int    `json:"block"`
	Version      int    `json:"version"`
	IP           string `json:"ip"`
	Port         int    `json:"port"`
	IPType       int    `json:"ipType"`
	Protocol     int    `json:"protocol"`
	Placeholder1 int    `json:"placeholder1"`
	Placeholder2 int    `json:"placeholder2"`
}

type LatestBlock struct {
	ParentHash     string `json:"parentHash"`
	BlockNumber    int    `json:"blockNumber"`
	StateRoot      string `json:"stateRoot"`
	ExtrinsicsRoot string `json:"extrinsicsRoot"`
}

type KeyringPair struct {
	Address   string         `json:"address"`
	IsLocked  bool           `json:"isLocked"`
	Meta      map[string]any `json:"meta"`
	PublicKey map[string]any `json:"publicKey"`
	Type      string         `json:"type"`
}

type KeyringPairInfo struct {
	KeyringPair   KeyringPair `json:"keyringPair"`
	WalletColdkey string      `json:"walletColdkey"`
}

type SubnetHyperparams struct {
	Rho                   float64 `json:"rho"`
	Kappa                 float64 `json:"kappa"`
	ImmunityPeriod        int     `json:"immunityPeriod"`
	MinAllowedWeights     int     `json:"minAllowedWeights"`
	MaxWeightsLimit       int     `json:"maxWeightsLimit"`
	Tempo                 int     `json:"tempo"`
	WeightsVersion        int     `json:"weightsVersion"`
	WeightsRateLimit      int     `json:"weightsRateLimit"`
	ActivityCutoff        int     `json:"activityCutoff"`
	RegistrationAllowed   bool    `json:"registrationAllowed"`
	TargetRegsPerInterval int     `json:"targetRegsPerInterval"`
	MaxRegsPerBlock       int     `json:"maxRegsPerBlock"`
	ServingRateLimit      int     `json:"servingRateLimit"`
	MaxValidators         int     `json:"maxValidators"`
}

// ServeAxonParams announces the miner's advertised endpoint on chain. IP is
// the big-endian integer form of the IPv4 address.
type ServeAxonParams struct {
	Version      int `json:"version"`
	IP           int `json:"ip"`
	Port         int `json:"port"`
	IPType       int `json:"ipType"`
	Netuid       int `json:"netuid"`
	Protocol     int `json:"protocol"`
	Placeholder1 int `json:"placeholder1"`
	Placeholder2 int `json:"placeholder2"`
}

type SetWeightsParams struct {
	Netuid     int   `json:"netuid"`
	Dests      []int `json:"dests"`
	Weights    []int `json:"weights"`
	VersionKey int   `json:"versionKey"`
}

type SignMessageParams struct {
	Message string `json:"message"`
}

type SignMessage struct {
	Signature string `json:"signature"`
}

type VerifyMessageParams struct {
	Message       string `json:"message"`
	Signature     string `json:"signature"`
	SigneeAddress string `json:"signeeAddress"`
}

type VerifyMessage struct {
	Valid bool `json:"valid"`
}
