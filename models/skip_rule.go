// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// Comparison defines how a skip rule criterion is compared with the actual
// element name, attribute name or attribute value.
type Comparison int

const (
	// Equals requires the whole value to match.
	Equals Comparison = iota

	// StartsWith requires the value to begin with the criterion.
	StartsWith

	// EndsWith requires the value to end with the criterion.
	EndsWith

	// Contains requires the criterion to appear anywhere in the value.
	Contains
)

// String returns the YAML/config name of the comparison.
func (c Comparison) String() string {
	switch c {
	case Equals:
		return "equals"
	case StartsWith:
		return "starts_with"
	case EndsWith:
		return "ends_with"
	case Contains:
		return "contains"
	default:
		return "unknown"
	}
}

// ParseComparison converts a config name ("equals", "starts_with",
// "ends_with", "contains") into a Comparison. Matching is case-insensitive
// and an empty name means Equals.
func ParseComparison(name string) (Comparison, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "equals":
		return Equals, nil
	case "starts_with", "startswith":
		return StartsWith, nil
	case "ends_with", "endswith":
		return EndsWith, nil
	case "contains":
		return Contains, nil
	default:
		return Equals, fmt.Errorf("unknown comparison %q", name)
	}
}

// SkipHTMLElementRule describes editor-only scaffolding that must never be
// persisted back into note content.
//
// Each non-empty criterion (element name, attribute name, attribute value)
// must match for the rule to match. Attribute name and value are matched
// against the same attribute. A rule whose criteria are all empty matches
// nothing.
type SkipHTMLElementRule struct {
	ElementNameToSkip           string
	ElementNameComparison       Comparison
	ElementNameCaseSensitive    bool
	AttributeNameToSkip         string
	AttributeNameComparison     Comparison
	AttributeNameCaseSensitive  bool
	AttributeValueToSkip        string
	AttributeValueComparison    Comparison
	AttributeValueCaseSensitive bool

	// IncludeElementContents keeps the children of a skipped element: only the
	// wrapping element is dropped and its children are spliced into the parent.
	IncludeElementContents bool
}
