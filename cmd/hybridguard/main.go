// Command hybridguard encrypts and decrypts files with the four-layer
// HybridGuard pipeline.
//
// Usage:
//
//	hybridguard keygen <password>
//	hybridguard encrypt <input> <output>
//	hybridguard decrypt <input> <output>
//	hybridguard info
//
// The key file path is taken from HYBRIDGUARD_KEYS (default
// "hybridguard-keys.json"). If HYBRIDGUARD_PASSPHRASE is set, the key file
// is sealed with it. A .env file in the working directory is loaded if
// present.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	hybridguard "github.com/hybridguard/hybridguard-go"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fatal("usage: hybridguard <keygen|encrypt|decrypt|info> [args]")
	}

	switch os.Args[1] {
	case "keygen":
		if len(os.Args) < 3 {
			fatal("usage: hybridguard keygen <password>")
		}
		keygen(os.Args[2])
	case "encrypt":
		if len(os.Args) < 4 {
			fatal("usage: hybridguard encrypt <input> <output>")
		}
		encrypt(os.Args[2], os.Args[3])
	case "decrypt":
		if len(os.Args) < 4 {
			fatal("usage: hybridguard decrypt <input> <output>")
		}
		decrypt(os.Args[2], os.Args[3])
	case "info":
		info()
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

func keyPath() string {
	if path := os.Getenv("HYBRIDGUARD_KEYS"); path != "" {
		return path
	}
	return "hybridguard-keys.json"
}

func loadGuard() *hybridguard.Guard {
	path := keyPath()

	var guard *hybridguard.Guard
	var err error
	if passphrase := os.Getenv("HYBRIDGUARD_PASSPHRASE"); passphrase != "" {
		guard, err = hybridguard.LoadSealed(path, passphrase)
	} else {
		guard, err = hybridguard.Load(path)
	}
	if err != nil {
		fatal("load keys: %v", err)
	}
	return guard
}

func keygen(password string) {
	guard, err := hybridguard.New(password)
	if err != nil {
		fatal("generate keys: %v", err)
	}

	path := keyPath()
	if passphrase := os.Getenv("HYBRIDGUARD_PASSPHRASE"); passphrase != "" {
		err = guard.SaveKeysSealed(path, passphrase)
	} else {
		err = guard.SaveKeys(path)
	}
	if err != nil {
		fatal("save keys: %v", err)
	}

	fmt.Printf("key set %s written to %s\n", guard.KeyID(), path)
}

func encrypt(inPath, outPath string) {
	guard := loadGuard()

	data, err := os.ReadFile(inPath)
	if err != nil {
		fatal("read input: %v", err)
	}

	envelope, err := guard.Encrypt(data)
	if err != nil {
		fatal("encrypt: %v", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fatal("create output: %v", err)
	}
	defer out.Close()

	if err := json.NewEncoder(out).Encode(envelope); err != nil {
		fatal("write envelope: %v", err)
	}

	fmt.Printf("encrypted %d bytes to %d (%.2fx expansion)\n",
		len(data), len(envelope.Ciphertext), float64(len(envelope.Ciphertext))/float64(len(data)))
}

func decrypt(inPath, outPath string) {
	guard := loadGuard()

	in, err := os.Open(inPath)
	if err != nil {
		fatal("read input: %v", err)
	}
	defer in.Close()

	var envelope hybridguard.Envelope
	if err := json.NewDecoder(in).Decode(&envelope); err != nil {
		fatal("parse envelope: %v", err)
	}

	plaintext, err := guard.Decrypt(&envelope)
	if err != nil {
		fatal("decrypt: %v", err)
	}

	if err := os.WriteFile(outPath, plaintext, 0o600); err != nil {
		fatal("write output: %v", err)
	}

	fmt.Printf("decrypted %d bytes\n", len(plaintext))
}

func info() {
	guard := loadGuard()

	stats := guard.Stats()
	fmt.Printf("key set: %s\n", stats.KeyID)
	for i, layer := range stats.Layers {
		fmt.Printf("layer %d: %-45s %4d bits  %s\n", i+1, layer.Name, layer.SecurityBits, layer.Status)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
