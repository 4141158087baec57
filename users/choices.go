// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package users

import "fmt"

// Gender is the user's gender code.
type Gender string

const (
	Male   Gender = "M"
	Female Gender = "F"
	Other  Gender = "O"
)

// Valid reports whether g is unset or one of the known codes.
func (g Gender) Valid() bool {
	switch g {
	case "", Male, Female, Other:
		return true
	}
	return false
}

// String returns the display label.
func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	case Other:
		return "Other"
	default:
		return ""
	}
}

// Cast is the user's social category code.
type Cast string

const (
	General Cast = "G"
	OBC     Cast = "O"
	SC      Cast = "Sc"
	ST      Cast = "St"
)

func (c Cast) Valid() bool {
	switch c {
	case "", General, OBC, SC, ST:
		return true
	}
	return false
}

func (c Cast) String() string {
	switch c {
	case General:
		return "GENERAL"
	case OBC:
		return "OBC"
	case SC:
		return "SC"
	case ST:
		return "ST"
	default:
		return ""
	}
}

// Occupation is the user's occupation type code.
type Occupation string

const (
	Government   Occupation = "G"
	Private      Occupation = "P"
	Farmer       Occupation = "F"
	SelfEmployed Occupation = "S"
	NoOccupation Occupation = "N"
)

func (o Occupation) Valid() bool {
	switch o {
	case "", Government, Private, Farmer, SelfEmployed, NoOccupation:
		return true
	}
	return false
}

func (o Occupation) String() string {
	switch o {
	case Government:
		return "Government"
	case Private:
		return "Private"
	case Farmer:
		return "Farmer"
	case SelfEmployed:
		return "Self"
	case NoOccupation:
		return "None"
	default:
		return ""
	}
}

func invalidChoice(value string) string {
	return fmt.Sprintf("%q is not a valid choice.", value)
}
