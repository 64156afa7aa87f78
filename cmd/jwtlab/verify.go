package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <token|->",
		Short: "Verify a token against JWT_SECRET and print its payload",
		Long: `Verify a token with the pinned algorithm from JWT_ALGORITHM and print the
payload as compact JSON. Pass "-" to read the token from stdin.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			if token == "-" {
				line, err := bufio.NewReader(a.stdin).ReadString('\n')
				if err != nil && line == "" {
					return usageError("no token on stdin")
				}
				token = strings.TrimSpace(line)
			}

			service, err := a.service()
			if err != nil {
				return err
			}
			payload, err := service.Verify(token)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, payload.Text())
			return nil
		},
	}
}
