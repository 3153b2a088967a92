package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chongliujia/ragJ-platform-sub002/pkg/wire"
)

// Validate is the shared validator instance for wire documents.
var Validate *validator.Validate

var identRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func init() {
	Validate = validator.New()
	Validate.RegisterValidation("ident", validateIdent)

	// Report JSON field names rather than Go field names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

func validateIdent(fl validator.FieldLevel) bool {
	return identRe.MatchString(fl.Field().String())
}

// ValidateDocument checks the structural contract of a wire document
// before it is accepted for deserialization or persistence. Semantic
// checks (port names, config rules) happen on the graph model, not here.
func ValidateDocument(doc *wire.Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	if err := Validate.Struct(doc); err != nil {
		return formatValidatorError(err)
	}

	seen := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if seen[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	return nil
}

// formatValidatorError flattens validator.ValidationErrors into one
// readable error.
func formatValidatorError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s exceeds maximum length %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid document: %s", strings.Join(msgs, "; "))
}
