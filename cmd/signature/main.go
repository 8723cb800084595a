package main

import (
	"log"
	"os"

	"github.com/storynet-labs/storynet/pkg/signature"
)

func main() {
	coldkey := os.Getenv("WALLET_COLDKEY")
	hotkey := os.Getenv("WALLET_HOTKEY")
	if coldkey == "" || hotkey == "" {
		log.Fatal("WALLET_COLDKEY and WALLET_HOTKEY must be set")
	}

	keypair, err := signature.LoadKeypairFromHotkey(coldkey, hotkey)
	if err != nil {
		log.Fatalf("Failed to load keypair: %v", err)
	}

	address, err := signature.ToSS58Address(keypair)
	if err != nil {
		log.Fatalf("Failed to derive address: %v", err)
	}
	log.Printf("Hotkey address: %s", address)

	provider, err := signature.NewProvider(keypair)
	if err != nil {
		log.Fatalf("Failed to create signature provider: %v", err)
	}

	message := "Hello, world!"
	sig, err := provider.Sign(message)
	if err != nil {
		log.Fatalf("Failed to sign message: %v", err)
	}
	log.Printf("Signature: %s", sig)

	ok, err := signature.Verify(message, sig, address)
	if err != nil {
		log.Fatalf("Failed to verify signature: %v", err)
	}
	log.Println("Signature valid:", ok)
}
