package signature

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
)

type walletEnv struct {
	BittensorDir string `env:"BITTENSOR_DIR"`
}

// LoadMnemonic reads the secret phrase out of a bittensor hotkey file.
func LoadMnemonic(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", fmt.Errorf("failed to get current user: %w", err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read keypair file %s: %w", path, err)
	}

	var keyfile map[string]any
	if err := sonic.Unmarshal(data, &keyfile); err != nil {
		return "", fmt.Errorf("failed to parse keypair JSON: %w", err)
	}

	seed, ok := keyfile["secretPhrase"]
	if !ok {
		return "", fmt.Errorf("secretPhrase not found in %s", path)
	}
	phrase, ok := seed.(string)
	if !ok {
		return "", fmt.Errorf("secretPhrase is not a string in %s", path)
	}
	return phrase, nil
}

// LoadKeypairFromHotkey loads the sr25519 keypair for the named coldkey and
// hotkey from the wallet directory given by BITTENSOR_DIR (defaulting to
// ~/.bittensor).
func LoadKeypairFromHotkey(coldkeyName, hotkeyName string) (*sr25519.Keypair, error) {
	var envCfg walletEnv
	if err := envconfig.Process(context.Background(), &envCfg); err != nil {
		return nil, fmt.Errorf("failed to process wallet environment: %w", err)
	}

	bittensorDir := envCfg.BittensorDir
	if bittensorDir == "" {
		bittensorDir = DefaultBittensorDir
	}

	path := bittensorDir + "/wallets/" + coldkeyName + "/hotkeys/" + hotkeyName
	log.Debug().Str("path", path).Msg("loading keypair from hotkey path")

	mnemonic, err := LoadMnemonic(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed phrase: %w", err)
	}

	keypair, err := sr25519.NewKeypairFromMnenomic(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create keypair from seed phrase: %w", err)
	}
	return keypair, nil
}
