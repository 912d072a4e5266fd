// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package converter

import (
	"strings"

	"github.com/MKhiriev/go-enml/models"
	"golang.org/x/net/html"
)

// matchSkipRule returns the first rule in list order that matches n.
func matchSkipRule(n *html.Node, rules []models.SkipHTMLElementRule) (models.SkipHTMLElementRule, bool) {
	for _, rule := range rules {
		if ruleMatches(n, rule) {
			return rule, true
		}
	}
	return models.SkipHTMLElementRule{}, false
}

// ruleMatches requires every non-empty criterion to match. Attribute name
// and value must match on the same attribute.
func ruleMatches(n *html.Node, rule models.SkipHTMLElementRule) bool {
	if rule.ElementNameToSkip == "" && rule.AttributeNameToSkip == "" && rule.AttributeValueToSkip == "" {
		return false
	}
	if rule.ElementNameToSkip != "" &&
		!compare(n.Data, rule.ElementNameToSkip, rule.ElementNameComparison, rule.ElementNameCaseSensitive) {
		return false
	}
	if rule.AttributeNameToSkip == "" && rule.AttributeValueToSkip == "" {
		return true
	}

	for _, a := range n.Attr {
		if rule.AttributeNameToSkip != "" &&
			!compare(a.Key, rule.AttributeNameToSkip, rule.AttributeNameComparison, rule.AttributeNameCaseSensitive) {
			continue
		}
		if rule.AttributeValueToSkip != "" &&
			!compare(a.Val, rule.AttributeValueToSkip, rule.AttributeValueComparison, rule.AttributeValueCaseSensitive) {
			continue
		}
		return true
	}
	return false
}

func compare(value, pattern string, cmp models.Comparison, caseSensitive bool) bool {
	if !caseSensitive {
		value, pattern = strings.ToLower(value), strings.ToLower(pattern)
	}
	switch cmp {
	case models.StartsWith:
		return strings.HasPrefix(value, pattern)
	case models.EndsWith:
		return strings.HasSuffix(value, pattern)
	case models.Contains:
		return strings.Contains(value, pattern)
	default:
		return value == pattern
	}
}
