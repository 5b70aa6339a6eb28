// Command hash-generator prints bcrypt hashes for the passwords given on the
// command line, suitable for seeding users directly in the database. The cost
// flag accepts the same range the server's configuration does.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/taskhq/taskhq-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost factor (4-31)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] <password> [password ...]")
		os.Exit(2)
	}

	hasher, err := auth.NewBcryptHasher(*cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid cost: %v\n", err)
		os.Exit(1)
	}

	for _, password := range flag.Args() {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
