package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/jwtlab/pkg/config"
	"github.com/dmitrymomot/jwtlab/pkg/forge"
	"github.com/dmitrymomot/jwtlab/pkg/jwt"
)

func newSignCmd(a *app) *cobra.Command {
	var (
		payload string
		alg     string
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Issue a token signed with JWT_SECRET",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if payload == "" {
				return usageError("--payload is required")
			}

			var opts []jwt.Option
			if alg != "" {
				parsed, err := jwt.ParseAlgorithm(alg)
				if err != nil {
					return usageError("--alg: %v", err)
				}
				opts = append(opts, jwt.WithAlgorithm(parsed))
			}

			service, err := a.service(opts...)
			if err != nil {
				return err
			}
			p, err := forge.ParsePayload(payload)
			if err != nil {
				return err
			}
			token, err := service.Generate(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, token)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&payload, "payload", "p", "", "JSON object to sign")
	f.StringVar(&alg, "alg", "", "signing algorithm (default from JWT_ALGORITHM)")
	return cmd
}

// service builds a verifier from JWT_SECRET, JWT_ALGORITHM and
// JWT_STRICT_HEADER. Options override the environment.
func (a *app) service(opts ...jwt.Option) (*jwt.Service, error) {
	var cfg jwt.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return jwt.NewFromConfig(cfg, append([]jwt.Option{jwt.WithLogger(a.log)}, opts...)...)
}
