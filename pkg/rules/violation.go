// Package rules holds the error type shared by the club domain rule packages.
package rules

// Violation is a rule failure tied to the request field it concerns. Rule packages
// expose their failures as *Violation sentinels so callers can match them with
// errors.Is and still report the field path.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func NewViolation(path, message string) *Violation {
	return &Violation{Path: path, Message: message}
}

func (v *Violation) Error() string {
	return v.Message
}

// Details flattens violations into the value form used in API responses.
func Details(violations ...*Violation) []Violation {
	details := make([]Violation, 0, len(violations))
	for _, v := range violations {
		if v != nil {
			details = append(details, *v)
		}
	}
	return details
}
