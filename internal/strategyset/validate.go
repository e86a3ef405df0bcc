package strategyset

import "fmt"

// ValidationError reports a manifest constraint violation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all manifest constraints.
func Validate(m *Manifest) error {
	if len(m.Strategies) == 0 {
		return ValidationError{"strategies", "at least one strategy required"}
	}

	seen := make(map[string]struct{}, len(m.Strategies))
	for i, s := range m.Strategies {
		field := func(sub string) string { return fmt.Sprintf("strategies[%d].%s", i, sub) }

		if s.Name == "" {
			return ValidationError{field("name"), "required"}
		}
		if _, dup := seen[s.Name]; dup {
			return ValidationError{field("name"), fmt.Sprintf("duplicate name %q", s.Name)}
		}
		seen[s.Name] = struct{}{}

		if s.CSV == "" {
			return ValidationError{field("csv"), "required"}
		}

		for product, size := range s.PositionSizes {
			if size <= 0 {
				return ValidationError{
					Field:   field("position_sizes." + product),
					Message: fmt.Sprintf("must be > 0, got %g", size),
				}
			}
		}
		for product, capital := range s.InitialCapital {
			if capital < 0 {
				return ValidationError{
					Field:   field("initial_capital." + product),
					Message: fmt.Sprintf("must be >= 0, got %g", capital),
				}
			}
		}
	}

	return nil
}
