// Package signature implements sr25519 message signing and verification for
// wallet hotkeys, plus loading keypairs from a bittensor wallet directory.
package signature

import "github.com/ChainSafe/gossamer/lib/crypto/sr25519"

const (
	// SubstrateNetworkID is the generic substrate SS58 prefix.
	SubstrateNetworkID = 42

	DefaultBittensorDir = "~/.bittensor"
)

// SignatureVerifier checks a signature against a message and SS58 address.
type SignatureVerifier interface {
	Verify(message, signature, ss58Address string) (bool, error)
}

// Verifier is the concrete sr25519 implementation of SignatureVerifier.
type Verifier struct{}

// SignatureProvider signs messages with a wallet hotkey.
type SignatureProvider interface {
	Sign(message string) (string, error)
}

// Provider is the concrete sr25519 implementation of SignatureProvider.
type Provider struct {
	keypair *sr25519.Keypair
}
