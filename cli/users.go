// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/absmach/accounts/users"
	"github.com/spf13/cobra"
)

// NewCreateSuperuserCmd returns the command creating an active superuser.
func NewCreateSuperuserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createsuperuser <email> <password>",
		Short: "Create superuser",
		Long: "Creates an active staff user with all privileges.\n" +
			"Usage:\n" +
			"\taccounts-cli createsuperuser admin@example.com 'S3cret!pass' --first-name Ada\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			user := users.User{
				Email:     args[0],
				FirstName: FirstName,
				LastName:  LastName,
			}
			user, err := usersSvc.CreateSuperuser(cmd.Context(), user, args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, user)
		},
	}

	cmd.Flags().StringVarP(&FirstName, "first-name", "f", "", "First name")
	cmd.Flags().StringVarP(&LastName, "last-name", "L", "", "Last name")

	return cmd
}
