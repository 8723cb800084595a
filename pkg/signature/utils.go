package signature

import (
	"fmt"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/vedhavyas/go-subkey"
)

// ToSS58Address encodes the keypair's public key as a generic substrate SS58
// address.
func ToSS58Address(keypair *sr25519.Keypair) (string, error) {
	if keypair == nil {
		return "", fmt.Errorf("keypair is nil")
	}
	return subkey.SS58Encode(keypair.Public().Encode(), SubstrateNetworkID), nil
}
