// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"regexp"

	"github.com/MKhiriev/go-enml/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// names may not contain whitespace or markup delimiters
	markupName = regexp.MustCompile(`^[^\s<>"'/=]*$`)

	comparisons = []any{models.Equals, models.StartsWith, models.EndsWith, models.Contains}
)

// SkipRuleValidator validates caller-supplied skip rules before a
// conversion uses them.
type SkipRuleValidator struct{}

// NewSkipRuleValidator returns a SkipRuleValidator as a Validator.
func NewSkipRuleValidator() Validator {
	return &SkipRuleValidator{}
}

// Validate accepts a single rule or a rule list, by value or pointer.
// Field names are not supported.
func (v *SkipRuleValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	if len(fields) > 0 {
		return ErrUnknownField
	}

	switch value := obj.(type) {
	case models.SkipHTMLElementRule:
		return v.validateRule(value)
	case *models.SkipHTMLElementRule:
		return v.validateRule(*value)
	case []models.SkipHTMLElementRule:
		for i, rule := range value {
			if err := v.validateRule(rule); err != nil {
				return fmt.Errorf("validation error at index %d: %w", i, err)
			}
		}
		return nil
	default:
		return ErrUnsupportedType
	}
}

func (v *SkipRuleValidator) validateRule(rule models.SkipHTMLElementRule) error {
	if rule.ElementNameToSkip == "" && rule.AttributeNameToSkip == "" && rule.AttributeValueToSkip == "" {
		return ErrEmptySkipRule
	}

	err := validation.ValidateStruct(&rule,
		validation.Field(&rule.ElementNameToSkip, validation.Length(0, 128), validation.Match(markupName)),
		validation.Field(&rule.ElementNameComparison, validation.In(comparisons...)),
		validation.Field(&rule.AttributeNameToSkip, validation.Length(0, 128), validation.Match(markupName)),
		validation.Field(&rule.AttributeNameComparison, validation.In(comparisons...)),
		validation.Field(&rule.AttributeValueComparison, validation.In(comparisons...)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSkipRule, err)
	}
	return nil
}
