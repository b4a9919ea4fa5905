package enums

import "fmt"

// PrescriptionRequirement describes whether a product needs a medical prescription.
type PrescriptionRequirement string

const (
	PrescriptionRequired    PrescriptionRequirement = "required"
	PrescriptionOptional    PrescriptionRequirement = "optional"
	PrescriptionNotRequired PrescriptionRequirement = "not_required"
)

var validPrescriptionRequirements = []PrescriptionRequirement{
	PrescriptionRequired,
	PrescriptionOptional,
	PrescriptionNotRequired,
}

// String implements fmt.Stringer.
func (p PrescriptionRequirement) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PrescriptionRequirement.
func (p PrescriptionRequirement) IsValid() bool {
	for _, candidate := range validPrescriptionRequirements {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePrescriptionRequirement converts raw input into a PrescriptionRequirement.
func ParsePrescriptionRequirement(value string) (PrescriptionRequirement, error) {
	for _, candidate := range validPrescriptionRequirements {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid prescription requirement %q", value)
}
