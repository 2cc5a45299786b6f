package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/reachsuite/emailbuilder/internal/http/middleware"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run prints a PASETO v4 key pair, or reuses -private-key, and optionally an
// editor token signed with it
func run(out io.Writer, args []string) error {
	flags := flag.NewFlagSet("keygen", flag.ContinueOnError)
	flags.SetOutput(out)
	privateKeyBase64 := flags.String("private-key", "", "existing base64 private key to sign with")
	userID := flags.String("user", "", "editor user id; prints a signed token when set")
	email := flags.String("email", "", "editor email stored in the token")
	ttl := flags.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var secretKey paseto.V4AsymmetricSecretKey
	if *privateKeyBase64 != "" {
		keyBytes, err := base64.StdEncoding.DecodeString(*privateKeyBase64)
		if err != nil {
			return fmt.Errorf("error decoding private key: %w", err)
		}
		secretKey, err = paseto.NewV4AsymmetricSecretKeyFromBytes(keyBytes)
		if err != nil {
			return fmt.Errorf("error creating PASETO private key: %w", err)
		}
	} else {
		secretKey = paseto.NewV4AsymmetricSecretKey()
		fmt.Fprintln(out, "Generated PASETO v4 key pair")
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Private Key (keep this secret!):")
	fmt.Fprintln(out, base64.StdEncoding.EncodeToString(secretKey.ExportBytes()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Public Key (PASETO_PUBLIC_KEY):")
	fmt.Fprintln(out, base64.StdEncoding.EncodeToString(secretKey.Public().ExportBytes()))

	if *userID != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Editor Token (expires in %s):\n", ttl.String())
		fmt.Fprintln(out, middleware.SignPasetoToken(secretKey, *userID, *email, *ttl))
	}
	return nil
}
