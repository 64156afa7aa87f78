package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/jwtlab/pkg/forge"
)

func newForgeCmd(a *app) *cobra.Command {
	var (
		token   string
		key     string
		keyHex  string
		payload string
	)

	cmd := &cobra.Command{
		Use:   "forge",
		Short: "Sign a new payload with a known secret, reusing a captured header",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				return usageError("--token is required")
			}
			if payload == "" {
				return usageError("--payload is required")
			}

			secret := []byte(key)
			switch {
			case cmd.Flags().Changed("key") && keyHex != "":
				return usageError("--key and --key-hex are mutually exclusive")
			case keyHex != "":
				decoded, err := hex.DecodeString(keyHex)
				if err != nil {
					return usageError("--key-hex: %v", err)
				}
				secret = decoded
			case !cmd.Flags().Changed("key"):
				return usageError("--key or --key-hex is required")
			}

			p, err := forge.ParsePayload(payload)
			if err != nil {
				return err
			}
			forged, err := forge.FromToken(secret, token, p)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, forged)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&token, "token", "t", "", "captured token whose header selects the algorithm")
	f.StringVarP(&key, "key", "k", "", "known secret")
	f.StringVar(&keyHex, "key-hex", "", "known secret as hex, for secrets that are not text")
	f.StringVarP(&payload, "payload", "p", "", "JSON object to sign")
	return cmd
}
