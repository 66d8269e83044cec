package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/playmatatu/arena/internal/auth"
)

// Prints the OPERATOR_KEY_HASH value for a key given as the first argument
// or in OPERATOR_KEY.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	key := os.Getenv("OPERATOR_KEY")
	if len(os.Args) > 1 {
		key = os.Args[1]
	}
	if key == "" {
		log.Fatalf("usage: operator-key <key> (or set OPERATOR_KEY)")
	}
	if len(key) < 12 {
		log.Printf("WARNING: operator key is shorter than 12 characters")
	}

	hashed, err := auth.HashOperatorKey(key)
	if err != nil {
		log.Fatalf("Failed to hash key: %v", err)
	}
	fmt.Printf("OPERATOR_KEY_HASH=%s\n", hashed)
}
