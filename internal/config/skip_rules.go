// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-enml/internal/validators"
	"github.com/MKhiriev/go-enml/models"
	"gopkg.in/yaml.v3"
)

// skipRuleFile is the YAML layout of a skip rule file:
//
//	rules:
//	  - element: div
//	    attribute: class
//	    value: cursor-marker
//	    value_comparison: starts_with
//	    include_contents: true
type skipRuleFile struct {
	Rules []skipRuleYAML `yaml:"rules"`
}

type skipRuleYAML struct {
	Element              string `yaml:"element"`
	ElementComparison    string `yaml:"element_comparison"`
	ElementCaseSensitive bool   `yaml:"element_case_sensitive"`

	Attribute              string `yaml:"attribute"`
	AttributeComparison    string `yaml:"attribute_comparison"`
	AttributeCaseSensitive bool   `yaml:"attribute_case_sensitive"`

	Value              string `yaml:"value"`
	ValueComparison    string `yaml:"value_comparison"`
	ValueCaseSensitive bool   `yaml:"value_case_sensitive"`

	IncludeContents bool `yaml:"include_contents"`
}

// LoadSkipRules reads and validates the skip rules in path. Rule order is
// kept; the first matching rule wins during conversion.
func LoadSkipRules(path string) ([]models.SkipHTMLElementRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading skip rules: %w", err)
	}
	return ParseSkipRules(data)
}

// ParseSkipRules decodes and validates a YAML skip rule document.
func ParseSkipRules(data []byte) ([]models.SkipHTMLElementRule, error) {
	var file skipRuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSkipRules, err)
	}

	rules := make([]models.SkipHTMLElementRule, 0, len(file.Rules))
	for i, r := range file.Rules {
		rule, err := r.toModel()
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %w", ErrInvalidSkipRules, i, err)
		}
		rules = append(rules, rule)
	}

	if err := validators.NewSkipRuleValidator().Validate(context.Background(), rules); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSkipRules, err)
	}
	return rules, nil
}

func (r skipRuleYAML) toModel() (models.SkipHTMLElementRule, error) {
	elementCmp, err := models.ParseComparison(r.ElementComparison)
	if err != nil {
		return models.SkipHTMLElementRule{}, fmt.Errorf("element_comparison: %w", err)
	}
	attributeCmp, err := models.ParseComparison(r.AttributeComparison)
	if err != nil {
		return models.SkipHTMLElementRule{}, fmt.Errorf("attribute_comparison: %w", err)
	}
	valueCmp, err := models.ParseComparison(r.ValueComparison)
	if err != nil {
		return models.SkipHTMLElementRule{}, fmt.Errorf("value_comparison: %w", err)
	}

	return models.SkipHTMLElementRule{
		ElementNameToSkip:           r.Element,
		ElementNameComparison:       elementCmp,
		ElementNameCaseSensitive:    r.ElementCaseSensitive,
		AttributeNameToSkip:         r.Attribute,
		AttributeNameComparison:     attributeCmp,
		AttributeNameCaseSensitive:  r.AttributeCaseSensitive,
		AttributeValueToSkip:        r.Value,
		AttributeValueComparison:    valueCmp,
		AttributeValueCaseSensitive: r.ValueCaseSensitive,
		IncludeElementContents:      r.IncludeContents,
	}, nil
}
