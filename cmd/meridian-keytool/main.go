// meridian-keytool generates, recovers, and inspects Meridian private keys.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/meridian-ledger/meridian-sdk-go/internal/log"
	"github.com/meridian-ledger/meridian-sdk-go/pkg/crypto"
	"github.com/meridian-ledger/meridian-sdk-go/pkg/mnemonic"
	"github.com/meridian-ledger/meridian-sdk-go/pkg/types"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Parse global flags that appear before the subcommand.
	logLevel := "info"
	logJSON := false

	// Scan for --log-level and --log-json before the subcommand.
	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--log-level" && len(args) > 1:
			logLevel = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--log-level="):
			logLevel = args[0][len("--log-level="):]
			args = args[1:]
		case args[0] == "--log-json":
			logJSON = true
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	log.Init(logLevel, logJSON)

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "generate":
		cmdGenerate(cmdArgs)
	case "recover":
		cmdRecover(cmdArgs)
	case "inspect":
		cmdInspect(cmdArgs)
	case "derive":
		cmdDerive(cmdArgs)
	case "sign":
		cmdSign(cmdArgs)
	case "checksum":
		cmdChecksum(cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: meridian-keytool [global flags] <command> [flags]

Global flags:
  --log-level <lvl>   debug, info, warn, or error (default: info)
  --log-json          Emit JSON logs instead of colored console output

Commands:
  generate [--algorithm ed25519|ecdsa] [--words 12|24] [--pem] [--encrypt]
                                  Generate a new private key
  recover --mnemonic "..." [--passphrase <p>] [--legacy]
                                  Recover a key from a mnemonic phrase
  inspect [--passphrase <p>] <key>
                                  Show details of a key (hex, PEM, or file)
  derive --key <key> --index <n> [--legacy]
                                  Derive a child key
  sign --key <key> --message <hex|file>
                                  Sign a message
  checksum [--network <net>] <shard.realm.num>
                                  Compute an entity ID checksum
`)
}

// ── generate ────────────────────────────────────────────────────────────

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	algorithm := fs.String("algorithm", "ed25519", "Key algorithm: ed25519 or ecdsa")
	words := fs.Int("words", 24, "Mnemonic length for ed25519 keys: 12 or 24")
	pemOut := fs.Bool("pem", false, "Print the key as PKCS#8 PEM")
	encrypt := fs.Bool("encrypt", false, "Encrypt the PEM output (prompts for a passphrase)")
	fs.Parse(args)

	var key *crypto.PrivateKey

	switch *algorithm {
	case "ed25519":
		m, err := mnemonic.Generate(*words)
		if err != nil {
			fatal("generate mnemonic: %v", err)
		}
		key, err = crypto.PrivateKeyFromMnemonic(m, "")
		if err != nil {
			fatal("derive key: %v", err)
		}
		fmt.Println("Mnemonic (write this down!):")
		fmt.Printf("  %s\n\n", m)
	case "ecdsa":
		var err error
		key, err = crypto.GenerateEcdsa()
		if err != nil {
			fatal("generate key: %v", err)
		}
	default:
		fatal("--algorithm must be 'ed25519' or 'ecdsa'")
	}

	if *pemOut {
		passphrase := ""
		if *encrypt {
			passphrase = promptNewPassphrase()
		}
		out, err := key.Pem(passphrase)
		if err != nil {
			fatal("encode pem: %v", err)
		}
		os.Stdout.Write(out)
		return
	}

	printKey(key)
}

// ── recover ─────────────────────────────────────────────────────────────

func cmdRecover(args []string) {
	fs := flag.NewFlagSet("recover", flag.ExitOnError)
	phrase := fs.String("mnemonic", "", "Mnemonic phrase (quoted)")
	passphrase := fs.String("passphrase", "", "BIP-39 passphrase")
	legacy := fs.Bool("legacy", false, "Use the raw-entropy path for 24-word phrases")
	fs.Parse(args)

	if *phrase == "" {
		fatal(`Usage: meridian-keytool recover --mnemonic "word1 word2 ..." [--passphrase <p>] [--legacy]`)
	}

	m, err := mnemonic.Parse(*phrase)
	if err != nil {
		fatal("parse mnemonic: %v", err)
	}
	if m.IsLegacy() {
		log.Info().Msg("legacy 22-word phrase detected")
	}

	var key *crypto.PrivateKey
	if *legacy && !m.IsLegacy() {
		if *passphrase != "" {
			fatal("--legacy recovery does not take a passphrase")
		}
		key, err = crypto.LegacyPrivateKeyFromMnemonic(m)
	} else {
		key, err = crypto.PrivateKeyFromMnemonic(m, *passphrase)
	}
	if err != nil {
		fatal("recover key: %v", err)
	}

	printKey(key)
}

// ── inspect ─────────────────────────────────────────────────────────────

func cmdInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	passphrase := fs.String("passphrase", "", "Passphrase for encrypted PEM input")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatal("Usage: meridian-keytool inspect [--passphrase <p>] <hex|pem|path>")
	}

	key, err := loadKey(fs.Arg(0), *passphrase)
	if err != nil {
		fatal("load key: %v", err)
	}

	printKey(key)
}

// ── derive ──────────────────────────────────────────────────────────────

func cmdDerive(args []string) {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	keyArg := fs.String("key", "", "Parent private key (hex, PEM, or file)")
	index := fs.Int64("index", 0, "Child index")
	legacy := fs.Bool("legacy", false, "Use legacy derivation")
	fs.Parse(args)

	if *keyArg == "" {
		fatal("Usage: meridian-keytool derive --key <key> --index <n> [--legacy]")
	}

	key, err := loadKey(*keyArg, "")
	if err != nil {
		fatal("load key: %v", err)
	}

	var child *crypto.PrivateKey
	if *legacy {
		child, err = key.LegacyDerive(*index)
	} else {
		if *index < 0 || *index > math.MaxUint32 {
			fatal("--index out of range for standard derivation")
		}
		child, err = key.Derive(uint32(*index))
	}
	if err != nil {
		fatal("derive child: %v", err)
	}

	printKey(child)
}

// ── sign ────────────────────────────────────────────────────────────────

func cmdSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	keyArg := fs.String("key", "", "Private key (hex, PEM, or file)")
	message := fs.String("message", "", "Message as hex, or a path to a file")
	fs.Parse(args)

	if *keyArg == "" || *message == "" {
		fatal("Usage: meridian-keytool sign --key <key> --message <hex|file>")
	}

	key, err := loadKey(*keyArg, "")
	if err != nil {
		fatal("load key: %v", err)
	}

	msg, err := readMessage(*message)
	if err != nil {
		fatal("%v", err)
	}

	pair := key.Sign(msg)
	fmt.Printf("Algorithm:  %s\n", key.Algorithm())
	fmt.Printf("Public key: %s\n", pair.PublicKey.StringRaw())
	fmt.Printf("Signature:  %s\n", hex.EncodeToString(pair.Signature))
}

// ── checksum ────────────────────────────────────────────────────────────

func cmdChecksum(args []string) {
	fs := flag.NewFlagSet("checksum", flag.ExitOnError)
	network := fs.String("network", "mainnet", "Ledger: mainnet, testnet, or previewnet")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatal("Usage: meridian-keytool checksum [--network <net>] <shard.realm.num>")
	}

	shard, realm, num, err := parseEntityID(fs.Arg(0))
	if err != nil {
		fatal("%v", err)
	}

	ledger, err := types.LedgerIDFromString(*network)
	if err != nil {
		fatal("%v", err)
	}

	sum := types.GenerateChecksum(ledger, shard, realm, num)
	fmt.Printf("%d.%d.%d-%s\n", shard, realm, num, sum)
}

// parseEntityID splits "shard.realm.num" into its three components.
func parseEntityID(s string) (shard, realm, num uint64, err error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entity id %q, want shard.realm.num", s)
	}
	if shard, err = strconv.ParseUint(parts[0], 10, 64); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid shard %q: %w", parts[0], err)
	}
	if realm, err = strconv.ParseUint(parts[1], 10, 64); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid realm %q: %w", parts[1], err)
	}
	if num, err = strconv.ParseUint(parts[2], 10, 64); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid num %q: %w", parts[2], err)
	}
	return shard, realm, num, nil
}

// ── Key helpers ─────────────────────────────────────────────────────────

// loadKey reads private key material given as a hex string, literal PEM
// text, or a path to a file holding either. Encrypted PEM prompts for a
// passphrase when none was supplied.
func loadKey(arg, passphrase string) (*crypto.PrivateKey, error) {
	input := []byte(arg)
	if data, err := os.ReadFile(arg); err == nil {
		log.Debug().Str("path", arg).Msg("read key material from file")
		input = data
	}

	text := strings.TrimSpace(string(input))
	if strings.Contains(text, "-----BEGIN") {
		if passphrase == "" && strings.Contains(text, "ENCRYPTED") {
			pw, err := readPassword("Enter passphrase: ")
			if err != nil {
				return nil, fmt.Errorf("read passphrase: %w", err)
			}
			passphrase = string(pw)
		}
		return crypto.PrivateKeyFromPem([]byte(text), passphrase)
	}
	return crypto.PrivateKeyFromString(text)
}

// readMessage decodes the --message argument: file contents when the
// argument names a readable file, hex otherwise.
func readMessage(arg string) ([]byte, error) {
	if data, err := os.ReadFile(arg); err == nil {
		return data, nil
	}
	msg, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid message hex: %w", err)
	}
	return msg, nil
}

func printKey(key *crypto.PrivateKey) {
	fmt.Printf("Algorithm:   %s\n", key.Algorithm())
	fmt.Printf("Private key: %s\n", key.StringRaw())
	fmt.Printf("Private DER: %s\n", key.StringDER())
	fmt.Printf("Public key:  %s\n", key.PublicKey().StringRaw())
	fmt.Printf("Public DER:  %s\n", key.PublicKey().StringDER())
	if cc := key.ChainCode(); cc != nil {
		fmt.Printf("Chain code:  %s\n", hex.EncodeToString(cc))
	}
	if key.Algorithm() == crypto.EcdsaSecp256k1 {
		if addr, err := key.PublicKey().EVMAddress(); err == nil {
			fmt.Printf("EVM address: 0x%s\n", addr)
		}
	}
}

// ── Password helpers ────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

func promptNewPassphrase() string {
	passphrase, err := readPassword("Enter passphrase: ")
	if err != nil {
		fatal("read passphrase: %v", err)
	}
	confirm, err := readPassword("Confirm passphrase: ")
	if err != nil {
		fatal("read passphrase: %v", err)
	}
	if string(passphrase) != string(confirm) {
		fatal("passphrases do not match")
	}
	if len(passphrase) == 0 {
		fatal("empty passphrase")
	}
	return string(passphrase)
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
