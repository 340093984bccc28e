package pkg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LerianStudio/lib-dax-copilot-go/constant"
)

// EntityNotFoundError records an error indicating a configuration entry was not found.
// It is returned for unknown key groups, key names and RLS rule names.
type EntityNotFoundError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e EntityNotFoundError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		if strings.TrimSpace(e.EntityType) != "" {
			return fmt.Sprintf("Entity %s not found", e.EntityType)
		}

		if e.Err != nil {
			return e.Err.Error()
		}

		return "entity not found"
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e EntityNotFoundError) Unwrap() error {
	return e.Err
}

// ValidationError records an error indicating a value could not be used as given.
type ValidationError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string
	Message    string
	Code       string
	Err        error `json:"err,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if strings.TrimSpace(e.Code) != "" {
		return fmt.Sprintf("%s - %s", e.Code, e.Message)
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ValidationError) Unwrap() error {
	return e.Err
}

// EntityConflictError records an error indicating an entity already exists,
// such as a configuration file that would be overwritten.
type EntityConflictError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e EntityConflictError) Error() string {
	if e.Err != nil && strings.TrimSpace(e.Message) == "" {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e EntityConflictError) Unwrap() error {
	return e.Err
}

// InternalServerError indicates an unexpected failure while loading or persisting configuration.
type InternalServerError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e InternalServerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

// Unwrap returns the underlying error.
func (e InternalServerError) Unwrap() error {
	return e.Err
}

// ValidationKnownFieldsError records an error that occurred during a validation of known fields.
type ValidationKnownFieldsError struct {
	EntityType string           `json:"entityType,omitempty"`
	Title      string           `json:"title,omitempty"`
	Code       string           `json:"code,omitempty"`
	Message    string           `json:"message,omitempty"`
	Fields     FieldValidations `json:"fields,omitempty"`
}

// Error returns the error message followed by the failing fields in a stable order.
func (r ValidationKnownFieldsError) Error() string {
	if len(r.Fields) == 0 {
		return r.Message
	}

	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, r.Fields[name]))
	}

	return fmt.Sprintf("%s (%s)", r.Message, strings.Join(parts, "; "))
}

// FieldValidations is a map of known fields and their validation errors.
type FieldValidations map[string]string

// ValidateInternalError wraps err into an InternalServerError for the given entity type.
func ValidateInternalError(err error, entityType string) error {
	return InternalServerError{
		EntityType: entityType,
		Code:       constant.ErrInternalServer.Error(),
		Title:      "Internal Error",
		Message:    fmt.Sprintf("unexpected failure handling %s", entityType),
		Err:        err,
	}
}

// ValidateBusinessError validates the error and returns the appropriate business error code, title, and message.
func ValidateBusinessError(err error, entityType string, args ...any) error {
	errorMap := map[error]error{
		constant.ErrUnknownKey: EntityNotFoundError{
			EntityType: entityType,
			Code:       constant.ErrUnknownKey.Error(),
			Title:      "Unknown configuration key",
			Message:    fmt.Sprintf("The configuration key '%s' does not exist.", args...),
		},
		constant.ErrUnknownRule: EntityNotFoundError{
			EntityType: entityType,
			Code:       constant.ErrUnknownRule.Error(),
			Title:      "Unknown RLS rule",
			Message:    fmt.Sprintf("No RLS rule named '%s' is configured.", args...),
		},
		constant.ErrUnresolvedToken: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrUnresolvedToken.Error(),
			Title:      "Unresolved placeholder",
			Message:    fmt.Sprintf("No value was supplied for placeholder '{%s}'.", args...),
		},
		constant.ErrMissingAPIKey: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrMissingAPIKey.Error(),
			Title:      "Missing API key",
			Message:    "The Azure OpenAI API key is empty. Set AZURE_OPENAI_API_KEY or the openai.apikey entry.",
		},
		constant.ErrInvalidSecretPayload: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidSecretPayload.Error(),
			Title:      "Invalid secret payload",
			Message:    fmt.Sprintf("The secret '%s' is not a JSON object of string values.", args...),
		},
		constant.ErrConfigFileExists: EntityConflictError{
			EntityType: entityType,
			Code:       constant.ErrConfigFileExists.Error(),
			Title:      "Configuration file exists",
			Message:    fmt.Sprintf("The file '%s' already exists. Remove it or allow overwriting.", args...),
		},
	}

	if mappedError, found := errorMap[err]; found {
		return mappedError
	}

	return err
}
