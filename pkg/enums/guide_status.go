package enums

import "fmt"

// GuideStatus tracks an ambassador's progress through an onboarding guide.
type GuideStatus string

const (
	GuideStatusPause      GuideStatus = "pause"
	GuideStatusNotStarted GuideStatus = "not_started"
	GuideStatusStarted    GuideStatus = "started"
	GuideStatusComplete   GuideStatus = "complete"
)

var validGuideStatuses = []GuideStatus{
	GuideStatusPause,
	GuideStatusNotStarted,
	GuideStatusStarted,
	GuideStatusComplete,
}

// String implements fmt.Stringer.
func (g GuideStatus) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GuideStatus.
func (g GuideStatus) IsValid() bool {
	for _, candidate := range validGuideStatuses {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGuideStatus converts raw input into a GuideStatus.
func ParseGuideStatus(value string) (GuideStatus, error) {
	for _, candidate := range validGuideStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid guide status %q", value)
}
