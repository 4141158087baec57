// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/absmach/accounts"
	"github.com/spf13/cobra"
)

type version struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

// NewVersionCmd returns version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Accounts CLI version",
		Long:  `Prints the version the CLI was built from`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			logJSONCmd(*cmd, version{
				Version:   accounts.Version,
				Commit:    accounts.Commit,
				BuildTime: accounts.BuildTime,
			})
		},
	}
}
