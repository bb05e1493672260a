package enums

import "fmt"

// GuideTaskType classifies onboarding guide tasks.
type GuideTaskType string

const (
	GuideTaskTypePhoto   GuideTaskType = "photo"
	GuideTaskTypeReview  GuideTaskType = "review"
	GuideTaskTypeContent GuideTaskType = "content"
)

var validGuideTaskTypes = []GuideTaskType{
	GuideTaskTypePhoto,
	GuideTaskTypeReview,
	GuideTaskTypeContent,
}

// String implements fmt.Stringer.
func (g GuideTaskType) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GuideTaskType.
func (g GuideTaskType) IsValid() bool {
	for _, candidate := range validGuideTaskTypes {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGuideTaskType converts raw input into a GuideTaskType.
func ParseGuideTaskType(value string) (GuideTaskType, error) {
	for _, candidate := range validGuideTaskTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid guide task type %q", value)
}
