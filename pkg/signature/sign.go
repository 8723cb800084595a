package signature

import (
	"encoding/hex"
	"fmt"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
)

// NewProvider creates a signature provider from a hotkey keypair.
func NewProvider(keypair *sr25519.Keypair) (*Provider, error) {
	return &Provider{keypair: keypair}, nil
}

// Sign signs the message and returns the signature as a 0x-prefixed hex
// string.
func (p *Provider) Sign(message string) (string, error) {
	if p.keypair == nil {
		return "", fmt.Errorf("private key not initialized")
	}

	sig, err := p.keypair.Sign([]byte(message))
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	return "0x" + hex.EncodeToString(sig), nil
}
