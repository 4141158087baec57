// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import "github.com/spf13/cobra"

var cmdCountries = []cobra.Command{
	{
		Use:   "add <name>",
		Short: "Add country",
		Long: "Adds a country.\n" +
			"Usage:\n" +
			"\taccounts-cli countries add Nepal\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			c, err := locationsSvc.AddCountry(cmd.Context(), args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, c)
		},
	},
	{
		Use:   "list",
		Short: "List countries",
		Long:  `Lists all countries ordered by name`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			cs, err := locationsSvc.ListCountries(cmd.Context())
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, cs)
		},
	},
	{
		Use:   "remove <country_id>",
		Short: "Remove country",
		Long:  `Removes a country together with its states, cities and the users located in it`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := locationsSvc.RemoveCountry(cmd.Context(), args[0]); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	},
}

var cmdStates = []cobra.Command{
	{
		Use:   "add <country_id> <name>",
		Short: "Add state",
		Long: "Adds a state to a country.\n" +
			"Usage:\n" +
			"\taccounts-cli states add <country_id> Bagmati\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			s, err := locationsSvc.AddState(cmd.Context(), args[0], args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, s)
		},
	},
	{
		Use:   "list <country_id>",
		Short: "List states",
		Long:  `Lists the states of a country`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			ss, err := locationsSvc.ListStates(cmd.Context(), args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, ss)
		},
	},
	{
		Use:   "remove <state_id>",
		Short: "Remove state",
		Long:  `Removes a state. Its cities and users keep their country and lose the state`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := locationsSvc.RemoveState(cmd.Context(), args[0]); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	},
}

var cmdCities = []cobra.Command{
	{
		Use:   "add <country_id> <name>",
		Short: "Add city",
		Long: "Adds a city to a country, optionally inside a state.\n" +
			"Usage:\n" +
			"\taccounts-cli cities add <country_id> Kathmandu --state <state_id>\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			c, err := locationsSvc.AddCity(cmd.Context(), args[0], StateID, args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, c)
		},
	},
	{
		Use:   "list <country_id>",
		Short: "List cities",
		Long:  `Lists the cities of a country, or of one of its states when --state is set`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			cs, err := locationsSvc.ListCities(cmd.Context(), args[0], StateID)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, cs)
		},
	},
	{
		Use:   "remove <city_id>",
		Short: "Remove city",
		Long:  `Removes a city together with the users located in it`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := locationsSvc.RemoveCity(cmd.Context(), args[0]); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	},
}

var cmdRoles = []cobra.Command{
	{
		Use:   "add <name>",
		Short: "Add role",
		Long:  `Adds a user role`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			r, err := locationsSvc.AddRole(cmd.Context(), args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, r)
		},
	},
	{
		Use:   "list",
		Short: "List roles",
		Long:  `Lists all user roles`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			rs, err := locationsSvc.ListRoles(cmd.Context())
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, rs)
		},
	},
	{
		Use:   "remove <role_id>",
		Short: "Remove role",
		Long:  `Removes a role together with the users holding it`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := locationsSvc.RemoveRole(cmd.Context(), args[0]); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	},
}

// NewCountriesCmd returns countries command.
func NewCountriesCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "countries [add | list | remove]",
		Short: "Countries management",
		Long:  `Countries management: add, list and remove countries`,
	}

	for i := range cmdCountries {
		cmd.AddCommand(&cmdCountries[i])
	}

	return &cmd
}

// NewStatesCmd returns states command.
func NewStatesCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "states [add | list | remove]",
		Short: "States management",
		Long:  `States management: add, list and remove states of a country`,
	}

	for i := range cmdStates {
		cmd.AddCommand(&cmdStates[i])
	}

	return &cmd
}

// NewCitiesCmd returns cities command.
func NewCitiesCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "cities [add | list | remove]",
		Short: "Cities management",
		Long:  `Cities management: add, list and remove cities of a country or state`,
	}

	cmd.PersistentFlags().StringVarP(&StateID, "state", "s", "", "State id")

	for i := range cmdCities {
		cmd.AddCommand(&cmdCities[i])
	}

	return &cmd
}

// NewRolesCmd returns roles command.
func NewRolesCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "roles [add | list | remove]",
		Short: "Roles management",
		Long:  `Roles management: add, list and remove user roles`,
	}

	for i := range cmdRoles {
		cmd.AddCommand(&cmdRoles[i])
	}

	return &cmd
}
