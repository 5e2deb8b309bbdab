package errors

import (
	"math"
	"regexp"
	"unicode"
)

// maxNameLength bounds scale and mark names.
const maxNameLength = 128

// nameRegex matches scale and mark names: an identifier that may also
// contain dots and dashes.
var nameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateName validates a scale or mark name. Names become owner keys on
// shared scales, so they must be non-empty and free of control characters.
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "%s name contains invalid control characters", kind)
		}
	}

	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid %s name: %q", kind, name)
	}

	return nil
}

// ValidateNonNegative rejects negative and non-finite values.
func ValidateNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", field, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %v", field, v)
	}
	return nil
}

// ValidateFraction accepts values in [0, 0.5). Figure padding is removed
// from both ends of a range, so half the extent or more leaves nothing.
func ValidateFraction(field string, v float64) error {
	if err := ValidateNonNegative(field, v); err != nil {
		return err
	}
	if v >= 0.5 {
		return New(ErrCodeInvalidConfig, "%s must be below 0.5, got %v", field, v)
	}
	return nil
}

// ValidateAspectBounds checks that both bounds are positive and ordered.
func ValidateAspectBounds(minRatio, maxRatio float64) error {
	if !(minRatio > 0) || math.IsInf(minRatio, 0) {
		return New(ErrCodeInvalidConfig, "min_aspect_ratio must be positive, got %v", minRatio)
	}
	if !(maxRatio > 0) || math.IsInf(maxRatio, 0) {
		return New(ErrCodeInvalidConfig, "max_aspect_ratio must be positive, got %v", maxRatio)
	}
	if minRatio > maxRatio {
		return New(ErrCodeInvalidConfig, "min_aspect_ratio %v exceeds max_aspect_ratio %v", minRatio, maxRatio)
	}
	return nil
}
