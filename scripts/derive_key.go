// derive_key.go prints the public half of a hex-encoded private key file.
// Usage: go run scripts/derive_key.go <keyfile>
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/meridian-ledger/meridian-sdk-go/pkg/crypto"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile>")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	key, err := crypto.PrivateKeyFromString(strings.TrimSpace(string(data)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	pub := key.PublicKey()
	fmt.Printf("algorithm=%s\n", key.Algorithm())
	fmt.Printf("pubkey=%s\n", pub.StringRaw())
	fmt.Printf("pubkey_der=%s\n", pub.StringDER())
}
