// Package intake accepts start-project submissions, validates them and fans
// them out to the configured notification channels.
package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Submission is the payload posted by the start-project form.
type Submission struct {
	Name         string   `json:"name" validate:"min=2"`
	Email        string   `json:"email" validate:"email"`
	Company      string   `json:"company" validate:"min=2"`
	Timeline     string   `json:"timeline" validate:"min=2"`
	Services     []string `json:"services" validate:"min=1"`
	Budget       string   `json:"budget" validate:"min=2"`
	Description  string   `json:"description" validate:"min=10"`
	Hear         string   `json:"hear,omitempty"`
	SlackChannel string   `json:"slackChannel,omitempty"`
	SlackInvite  *bool    `json:"slackInvite,omitempty"`
}

// InviteToSlack reports the slackInvite answer, which defaults to true.
func (s Submission) InviteToSlack() bool {
	return s.SlackInvite == nil || *s.SlackInvite
}

// Issue describes one failing field.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every problem found in a submission.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+": "+is.Message)
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// ErrMalformedBody is returned by Decode when the body is not a JSON object.
var ErrMalformedBody = errors.New("malformed request body")

var messages = map[string]string{
	"name":        "Tell us your name",
	"email":       "Enter a valid email",
	"company":     "Provide your company or team",
	"timeline":    "Select a timeline",
	"services":    "Select at least one focus area",
	"budget":      "Share a budget range",
	"description": "Add a bit more detail",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks sub against the form schema. The returned error is a
// *ValidationError naming every failing field.
func Validate(sub Submission) error {
	err := validate.Struct(sub)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate submission: %w", err)
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		issues = append(issues, Issue{Field: fe.Field(), Rule: fe.Tag(), Message: msg})
	}
	return &ValidationError{Issues: issues}
}

// Decode reads a submission from r and validates it. Syntax errors wrap
// ErrMalformedBody. A wrong field type is reported as a *ValidationError
// together with every schema failure of the remaining fields.
func Decode(r io.Reader) (Submission, error) {
	var sub Submission
	var issues []Issue
	typeField := ""
	if err := json.NewDecoder(r).Decode(&sub); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return Submission{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		typeField = typeErr.Field
		if typeField == "" {
			return Submission{}, &ValidationError{Issues: []Issue{typeIssue("body", typeErr)}}
		}
		issues = append(issues, typeIssue(typeField, typeErr))
	}

	if err := Validate(sub); err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return Submission{}, err
		}
		for _, issue := range verr.Issues {
			if issue.Field != typeField {
				issues = append(issues, issue)
			}
		}
	}
	if len(issues) > 0 {
		return Submission{}, &ValidationError{Issues: issues}
	}
	return sub, nil
}

func typeIssue(field string, err *json.UnmarshalTypeError) Issue {
	return Issue{Field: field, Rule: "type", Message: fmt.Sprintf("Expected %s", err.Type)}
}
