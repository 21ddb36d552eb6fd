// Command hash-generator prints bcrypt hashes for the passwords given on the
// command line. Useful for seeding accounts in development databases.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/schoolforge/schoolforge-api/internal/auth/token"
)

func main() {
	cost := flag.Int("cost", 0, "bcrypt cost (0 uses the library default)")
	flag.Parse()

	passwords := flag.Args()
	if len(passwords) == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] <password> [password...]")
		os.Exit(1)
	}

	for _, password := range passwords {
		hash, err := token.HashPassword(password, *cost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error generating hash for %q: %v\n", password, err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
