package main

import (
	"fmt"
	"mealremind/internal/config"
	tokenhasher "mealremind/internal/implementations/token_hasher"
	"os"
)

// Prints the hash to put into AUTH_TOKEN_HASH for the given access token.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <token>\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if cfg.AuthSecret == "" {
		fmt.Fprintln(os.Stderr, "error: AUTH_SECRET is not set")
		os.Exit(1)
	}

	hash, err := tokenhasher.NewBcrypt(cfg.AuthSecret, cfg.BcryptHasherCost).HashToken(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
