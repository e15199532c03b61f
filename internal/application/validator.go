package application

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/linskybing/programhub/internal/domain/program"
	"gopkg.in/yaml.v2"
	"gorm.io/datatypes"
)

// Validator decides whether a draft's form is complete enough to submit.
type Validator interface {
	Validate(programName string, form datatypes.JSON) error
}

type ruleSet struct {
	Required []string `yaml:"required"`
}

type rulesFile struct {
	Default  ruleSet            `yaml:"default"`
	Programs map[string]ruleSet `yaml:"programs"`
}

// RequiredFieldsValidator requires a JSON object whose listed keys are
// present and non-blank. Program rules replace the default rules.
type RequiredFieldsValidator struct {
	defaults []string
	programs map[string][]string
	validate *validator.Validate
}

func NewRequiredFieldsValidator(defaults []string, programs map[string][]string) *RequiredFieldsValidator {
	v := &RequiredFieldsValidator{
		defaults: defaults,
		programs: make(map[string][]string, len(programs)),
		validate: validator.New(),
	}
	for name, fields := range programs {
		v.programs[normalizeProgram(name)] = fields
	}
	return v
}

// LoadValidationRules reads YAML rules of the form
//
//	default:
//	  required: [startup_name, pitch]
//	programs:
//	  S3 Incubator:
//	    required: [startup_name, pitch, team_size]
func LoadValidationRules(path string) (*RequiredFieldsValidator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseValidationRules(raw)
}

func ParseValidationRules(raw []byte) (*RequiredFieldsValidator, error) {
	var f rulesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse validation rules: %w", err)
	}
	programs := make(map[string][]string, len(f.Programs))
	for name, rs := range f.Programs {
		programs[name] = rs.Required
	}
	return NewRequiredFieldsValidator(f.Default.Required, programs), nil
}

func (v *RequiredFieldsValidator) Validate(programName string, form datatypes.JSON) error {
	if len(strings.TrimSpace(string(form))) == 0 {
		return &program.ValidationError{Fields: map[string]string{"form_data": "is required"}}
	}
	var values map[string]any
	if err := json.Unmarshal(form, &values); err != nil || values == nil {
		return &program.ValidationError{Fields: map[string]string{"form_data": "must be a JSON object"}}
	}

	data := make(map[string]any, len(values))
	rules := make(map[string]any)
	for _, key := range v.required(programName) {
		value, tag := requiredTag(values[key])
		if tag == "" {
			continue
		}
		data[key] = value
		rules[key] = tag
	}

	errs := v.validate.ValidateMap(data, rules)
	if len(errs) == 0 {
		return nil
	}
	missing := make(map[string]string, len(errs))
	for key := range errs {
		missing[key] = "is required"
	}
	return &program.ValidationError{Fields: missing}
}

func (v *RequiredFieldsValidator) required(programName string) []string {
	if fields, ok := v.programs[normalizeProgram(programName)]; ok {
		return fields
	}
	return v.defaults
}

// requiredTag picks the validator tag for a decoded JSON value. Blank
// strings and empty lists or objects are missing; false and 0 are answers.
func requiredTag(value any) (any, string) {
	switch t := value.(type) {
	case bool, float64:
		return t, ""
	case string:
		return strings.TrimSpace(t), "required"
	case []any, map[string]any:
		return t, "required,min=1"
	default:
		return t, "required"
	}
}

func normalizeProgram(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
