package store

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks a candidate user against the field rules and returns
// every violation in attribute order (name, email, age, position). In full
// mode every attribute must be present; otherwise only the provided
// attributes are checked, and at least one must be provided. Rules never
// short-circuit: a candidate breaking several rules reports them all.
func Validate(p Patch, full bool) []string {
	var msgs []string

	if p.Name == nil {
		if full {
			msgs = append(msgs, "Field 'name' is required")
		}
	} else if len(strings.TrimSpace(*p.Name)) < 2 {
		msgs = append(msgs, "Name must be at least 2 characters long")
	}

	if p.Email == nil {
		if full {
			msgs = append(msgs, "Field 'email' is required")
		}
	} else if !emailPattern.MatchString(*p.Email) {
		msgs = append(msgs, "Invalid email format")
	}

	if p.Age == nil {
		if full {
			msgs = append(msgs, "Field 'age' is required")
		}
	} else if *p.Age < 0 || *p.Age > 150 {
		msgs = append(msgs, "Age must be between 0 and 150")
	}

	if p.Position == nil {
		if full {
			msgs = append(msgs, "Field 'position' is required")
		}
	} else if len(strings.TrimSpace(*p.Position)) < 2 {
		msgs = append(msgs, "Position must be at least 2 characters long")
	}

	if !full && p.Name == nil && p.Email == nil && p.Age == nil && p.Position == nil {
		msgs = append(msgs, "At least one field must be provided")
	}

	return msgs
}
