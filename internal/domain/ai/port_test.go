package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillTemplate(t *testing.T) {
	assert.Equal(t, "stats:\nA: 2\nend", FillTemplate("stats:\n{statistics}\nend", "A: 2"))
	assert.Equal(t, "no placeholder\n\nA: 2", FillTemplate("no placeholder", "A: 2"))
}

func TestSummaryGenerationErrorUnwrap(t *testing.T) {
	err := &SummaryGenerationError{Provider: "openai", Err: ErrQuotaExceeded}
	assert.True(t, errors.Is(err, ErrQuotaExceeded))
	assert.Contains(t, err.Error(), "openai")
}
