// Command genkey prints a fresh API key and its sha256 hash, for
// inserting merchant keys by hand when the admin API is unavailable.
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

func main() {
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		fmt.Fprintln(os.Stderr, "failed to generate key:", err)
		os.Exit(1)
	}
	apiKey := "ck_" + hex.EncodeToString(keyBytes)
	hash := sha256.Sum256([]byte(apiKey))

	fmt.Println("api key: ", apiKey)
	fmt.Println("key hash:", hex.EncodeToString(hash[:]))
}
