package synth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: "espeak"})
	assert.ErrorContains(t, err, `unknown provider "espeak"`)
	for _, p := range Providers {
		assert.ErrorContains(t, err, p)
	}
}

func TestSynthesisError_Message(t *testing.T) {
	cause := errors.New("boom")
	err := &SynthesisError{Provider: "azure", Code: "1007", Message: "Invalid SSML", Cause: cause}
	assert.Equal(t, "azure: Invalid SSML (1007): boom", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "polly: synthesize", (&SynthesisError{Provider: "polly", Message: "synthesize"}).Error())
}

func TestUsesAzureSSML(t *testing.T) {
	assert.True(t, UsesAzureSSML(""))
	assert.True(t, UsesAzureSSML(ProviderAzure))
	assert.False(t, UsesAzureSSML(ProviderGoogle))
}
