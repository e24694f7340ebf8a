// Command apikey generates a fresh API key together with its bcrypt
// hash, for the API_KEYS / API_KEY_HASHES allow-lists.
package main

import (
	"fmt"

	"github.com/shindesiddhant-415/Honeypot/internal/auth"
)

func main() {
	key, err := auth.GenerateKey()
	if err != nil {
		panic(err)
	}
	hash, err := auth.HashKey(key)
	if err != nil {
		panic(err)
	}

	fmt.Printf("API key:     %s\n", key)
	fmt.Printf("bcrypt hash: %s\n", hash)
}
