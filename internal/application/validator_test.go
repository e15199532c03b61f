package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/linskybing/programhub/internal/application"
	"github.com/linskybing/programhub/internal/domain/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

const rulesYAML = `
default:
  required: [startup_name]
programs:
  S3 Incubator:
    required: [startup_name, pitch, team]
`

func TestRequiredFieldsValidator(t *testing.T) {
	v, err := application.ParseValidationRules([]byte(rulesYAML))
	require.NoError(t, err)

	tests := []struct {
		name    string
		program string
		form    string
		missing []string
	}{
		{"default rules pass", "Other", `{"startup_name":"Acme"}`, nil},
		{"default rules fail", "Other", `{"pitch":"x"}`, []string{"startup_name"}},
		{"program rules, case-insensitive", "s3 incubator", `{"startup_name":"Acme","pitch":"","team":[]}`, []string{"pitch", "team"}},
		{"program rules pass", "S3 Incubator", `{"startup_name":"Acme","pitch":"p","team":["ann"]}`, nil},
		{"numbers and booleans count", "S3 Incubator", `{"startup_name":"Acme","pitch":0,"team":false}`, nil},
		{"blank, empty and null values are missing", "S3 Incubator", `{"startup_name":"  ","pitch":{},"team":null}`, []string{"startup_name", "pitch", "team"}},
		{"absent keys are missing", "S3 Incubator", `{}`, []string{"startup_name", "pitch", "team"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.program, datatypes.JSON(tc.form))
			if tc.missing == nil {
				assert.NoError(t, err)
				return
			}
			var ve *program.ValidationError
			require.ErrorAs(t, err, &ve)
			for _, f := range tc.missing {
				assert.Equal(t, "is required", ve.Fields[f])
			}
			assert.Len(t, ve.Fields, len(tc.missing))
		})
	}
}

func TestValidatorRejectsNonObjects(t *testing.T) {
	v := application.NewRequiredFieldsValidator(nil, nil)

	assert.NoError(t, v.Validate("any", datatypes.JSON(`{}`)))
	for _, form := range []string{``, `  `, `[1,2]`, `"text"`, `null`, `{broken`} {
		err := v.Validate("any", datatypes.JSON(form))
		assert.ErrorIs(t, err, program.ErrValidation, "form %q", form)
	}
}

func TestLoadValidationRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rulesYAML), 0o600))

	v, err := application.LoadValidationRules(path)
	require.NoError(t, err)
	assert.ErrorIs(t, v.Validate("S3 Incubator", datatypes.JSON(`{"startup_name":"Acme"}`)), program.ErrValidation)

	_, err = application.LoadValidationRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = application.ParseValidationRules([]byte("default: [unterminated"))
	assert.Error(t, err)
}
