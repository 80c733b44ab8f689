package validation

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

func number(min, max interface{}, exclusiveMin bool) map[string]interface{} {
	s := map[string]interface{}{"type": "number"}
	if min != nil {
		if exclusiveMin {
			s["exclusiveMinimum"] = min
		} else {
			s["minimum"] = min
		}
	}
	if max != nil {
		s["maximum"] = max
	}
	return s
}

func integer(min, max int) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "minimum": min, "maximum": max}
}

func object(properties map[string]interface{}, required ...string) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// InputSchema returns the JSON schema that a scenario document must satisfy.
// It encodes the per-field ranges; relationships between fields, such as the
// down payment being below the price, are enforced when inputs are built.
func InputSchema() map[string]interface{} {
	financing := object(map[string]interface{}{
		"downPayment":        number(0, nil, true),
		"downPaymentPercent": number(0, 100, true),
		"interestRate":       number(0, 20, false),
		"loanTerm":           integer(1, 50),
		"monthlyPayment":     number(0, nil, false),
	}, "loanTerm")
	financing["anyOf"] = []interface{}{
		map[string]interface{}{"required": []string{"downPayment"}},
		map[string]interface{}{"required": []string{"downPaymentPercent"}},
	}

	return map[string]interface{}{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{"type": "string"},
			"property": object(map[string]interface{}{
				"price":     number(0, nil, true),
				"landValue": number(0, nil, false),
				"purchaseDate": map[string]interface{}{
					"type":    "string",
					"pattern": `^\d{4}-(0[1-9]|1[0-2])$`,
				},
			}, "price"),
			"financing": financing,
			"income": object(map[string]interface{}{
				"monthlyRent":    number(0, nil, true),
				"rentGrowthRate": number(0, 20, false),
				"vacancyRate":    number(0, 50, false),
			}, "monthlyRent"),
			"expenses": object(map[string]interface{}{
				"propertyTax":        number(0, nil, false),
				"insurance":          number(0, nil, false),
				"hoaFees":            number(0, nil, false),
				"utilities":          number(0, nil, false),
				"maintenance":        number(0, nil, false),
				"propertyManagement": number(0, 20, false),
			}),
			"tax": object(map[string]interface{}{
				"rate": number(0, 50, false),
				"depreciationMethod": map[string]interface{}{
					"type": "string",
					"enum": []string{"", "none", "straight-line", "straight_line", "straightline", "accelerated", "macrs"},
				},
				"depreciationPeriod": number(0, nil, false),
			}),
			"analysis": object(map[string]interface{}{
				"period":           integer(1, 30),
				"appreciationRate": number(0, 20, false),
				"sellingCosts":     number(0, 20, false),
				"inflationRate":    number(0, 20, false),
				"discountRate":     number(0, 20, false),
				"sensitivity":      map[string]interface{}{"type": "boolean"},
			}, "period"),
			"output": object(map[string]interface{}{
				"format": map[string]interface{}{
					"type": "string",
					"enum": append([]string{""}, OutputFormats()...),
				},
				"currency": map[string]interface{}{"type": "string"},
			}),
		},
		"required": []string{"property", "financing", "income", "analysis"},
	}
}

// ValidateDocument checks doc against InputSchema. doc may be a decoded JSON
// or YAML map or any value that marshals to JSON. The returned slice lists
// every violation; the error is only set when validation could not run.
func ValidateDocument(doc interface{}) ([]string, error) {
	schemaLoader := gojsonschema.NewGoLoader(InputSchema())
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}
	violations := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		violations[i] = desc.String()
	}
	sort.Strings(violations)
	return violations, nil
}
