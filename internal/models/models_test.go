package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategories(t *testing.T) {
	cats, err := ParseCategories([]string{"Transcript", " slides ", "report"})
	require.NoError(t, err)
	assert.Equal(t, []Category{CategoryTranscript, CategorySlides, CategoryReport}, cats)
}

func TestParseCategoryUnknown(t *testing.T) {
	_, err := ParseCategory("press-release")
	require.Error(t, err)
}

func TestRunProgressFraction(t *testing.T) {
	p := RunProgress{Total: 4, Processed: 1}
	assert.Equal(t, 0.25, p.Fraction())
	assert.Equal(t, "1/4", p.Status())

	assert.Zero(t, RunProgress{}.Fraction())
}

func TestUnitErrorWrapping(t *testing.T) {
	cause := errors.New("HTTP 403")
	err := &UnitError{Kind: FailureUpload, Err: cause}

	assert.Equal(t, "upload: HTTP 403", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestRunResultSummary(t *testing.T) {
	r := &RunResult{Total: 3, Processed: 3, Succeeded: 2, Failed: 1}
	assert.Equal(t, "total: 3, processed: 3, succeeded: 2, failed: 1", r.Summary())
}
