package snapshot

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/huangsam/teamcap/schema"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Load reads, defaults and validates a snapshot file.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	doc, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return doc, nil
}

// Decode parses a snapshot document held in memory.
func Decode(b []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, &schema.ValidationError{Field: "document", Reason: err.Error()}
	}

	// Set default values
	if err := defaults.Set(&doc); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	// Validate struct
	if err := validate.Struct(&doc); err != nil {
		return nil, validationErrors(err)
	}

	if err := doc.checkConsistency(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// checkConsistency covers the cross-field rules struct tags cannot express.
func (d *Document) checkConsistency() error {
	seen := make(map[string]struct{}, len(d.Members))
	for _, m := range d.Members {
		if _, dup := seen[m.ID]; dup {
			return &schema.ValidationError{Field: "members", Reason: fmt.Sprintf("duplicate member id %q", m.ID)}
		}
		seen[m.ID] = struct{}{}
	}

	if d.SprintDoc != nil {
		if err := checkRange("sprint", d.SprintDoc.Start, d.SprintDoc.End); err != nil {
			return err
		}
		total, done := d.SprintDoc.points()
		if done > total {
			return &schema.ValidationError{
				Field:  "sprint.done_points",
				Reason: fmt.Sprintf("done points %d exceed total points %d", done, total),
			}
		}
	}
	for i, p := range d.PTO {
		if err := checkRange(fmt.Sprintf("pto[%d]", i), p.Start, p.End); err != nil {
			return err
		}
	}
	if d.Coverage != nil {
		if err := checkRange("coverage", d.Coverage.Start, d.Coverage.End); err != nil {
			return err
		}
	}
	return nil
}

func checkRange(field, start, end string) error {
	s, err := schema.ParseDate(start)
	if err != nil {
		return &schema.ValidationError{Field: field + ".start", Reason: err.Error()}
	}
	e, err := schema.ParseDate(end)
	if err != nil {
		return &schema.ValidationError{Field: field + ".end", Reason: err.Error()}
	}
	return schema.ValidateRange(field, s, e)
}

// validationErrors maps validator failures onto one ValidationError per field.
func validationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &schema.ValidationError{Reason: err.Error()}
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Document.")
		errs = append(errs, &schema.ValidationError{Field: field, Reason: getErrorMessage(fe)})
	}
	return errors.Join(errs...)
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s (received %v)", strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("must be a date formatted as %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
