// Package validation checks a configuration document on request. Loading
// never calls it; operators and consumers opt in.
package validation

import (
	"fmt"
	"strings"

	"github.com/LerianStudio/lib-commons/commons"
	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-dax-copilot-go/constant"
	"github.com/LerianStudio/lib-dax-copilot-go/model"
	"github.com/LerianStudio/lib-dax-copilot-go/pkg"
	"github.com/go-playground/validator"
)

var validate = validator.New()

// Validate reports every problem found in doc as a single
// pkg.ValidationKnownFieldsError. A nil return means the document is usable.
func Validate(doc *model.Document, logger log.Logger) error {
	if doc == nil {
		return pkg.ValidationError{
			EntityType: "Document",
			Code:       constant.ErrInvalidDocument.Error(),
			Title:      "Missing document",
			Message:    "configuration document is nil",
		}
	}

	fields := pkg.FieldValidations{}

	if err := validate.Struct(doc); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return pkg.ValidateInternalError(err, "Document")
		}

		for _, fe := range verrs {
			fields[fieldPath(fe.Namespace())] = describe(fe.Tag())
		}
	}

	checkRules(doc.RLSRules, fields)
	checkPlaceholders(doc, fields)

	if len(fields) == 0 {
		logger.Debugf("Configuration document is valid [fingerprint: %s]", doc.Fingerprint())

		return nil
	}

	for field, msg := range fields {
		logger.Warnf("Configuration field %s: %s", field, msg)
	}

	return pkg.ValidationKnownFieldsError{
		EntityType: "Document",
		Code:       constant.ErrInvalidDocument.Error(),
		Title:      "Invalid configuration document",
		Message:    fmt.Sprintf("%d configuration field(s) need attention", len(fields)),
		Fields:     fields,
	}
}

func checkRules(rules model.RuleSet, fields pkg.FieldValidations) {
	for name, rule := range rules {
		if commons.IsNilOrEmpty(&name) {
			fields[constant.GroupRLSRules+"[]"] = "rule name must not be empty"
			continue
		}

		if strings.Contains(name, ".") {
			fields[ruleField(name, "")] = "rule name must not contain '.'"
		}

		if strings.TrimSpace(rule.Filter) == "" {
			fields[ruleField(name, constant.KeyFilter)] = "is required"
		}

		if strings.TrimSpace(rule.Description) == "" {
			fields[ruleField(name, constant.KeyDescription)] = "is required"
		}
	}
}

func checkPlaceholders(doc *model.Document, fields pkg.FieldValidations) {
	for name, path := range constant.KeyPathByEnv {
		if path == constant.GroupMetadata {
			continue
		}

		value, err := doc.Value(name)
		if err != nil || value == "" {
			continue
		}

		if pkg.IsTemplatePlaceholder(value) {
			if _, seen := fields[path]; !seen {
				fields[path] = "template placeholder was not replaced"
			}
		}
	}
}

func ruleField(name, key string) string {
	if key == "" {
		return fmt.Sprintf("%s[%s]", constant.GroupRLSRules, name)
	}

	return fmt.Sprintf("%s[%s].%s", constant.GroupRLSRules, name, key)
}

// fieldPath turns a validator namespace such as Document.OpenAI.Endpoint or
// Document.RLSRules[x].Filter into the lower-case document path.
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		rest = namespace
	}

	if strings.HasPrefix(rest, "RLSRules[") {
		end := strings.Index(rest, "]")
		name := rest[len("RLSRules["):end]

		return ruleField(name, strings.ToLower(strings.TrimPrefix(rest[end+1:], ".")))
	}

	return strings.ToLower(rest)
}

func describe(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	default:
		return "failed " + tag + " check"
	}
}
