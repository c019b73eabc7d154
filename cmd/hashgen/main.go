package main

import (
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/alcuin/alcuinch/pkg"
)

// small tool for generating the admin password hash, to be set
// via ALCUIN_ADMIN_PASSWORD_HASH
func main() {
	algo := flag.String("algo", "bcrypt", "hash algorithm [bcrypt | sha256]")
	flag.Parse()

	password := flag.Arg(0)
	if password == "" {
		fmt.Println("usage: hashgen [-algo bcrypt|sha256] <password>")
		os.Exit(1)
	}

	switch *algo {
	case "bcrypt":
		hash, err := pkg.HashPassword(password)
		if err != nil {
			fmt.Printf("hash password: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
	case "sha256":
		hash := sha256.Sum256([]byte(password))
		fmt.Println(hex.EncodeToString(hash[:]))
	default:
		fmt.Printf("unknown algorithm: %s\n", *algo)
		os.Exit(1)
	}
}
