package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderDimensions(t *testing.T) {
	assert.Equal(t, 1024, NewVoyageProvider("k").Dimension("voyage-3-large"))
	assert.Equal(t, 512, NewVoyageProvider("k").Dimension("voyage-3-lite"))
	assert.Equal(t, 1536, NewOpenAIProvider("k").Dimension("text-embedding-3-small"))
	assert.Equal(t, 768, NewOllamaProvider("").Dimension("nomic-embed-text"))
}

func TestProviderClientsHaveTimeouts(t *testing.T) {
	// A hung embedding backend must not stall requests indefinitely.
	assert.NotZero(t, NewVoyageProvider("k").client.Timeout)
	assert.NotZero(t, NewOpenAIProvider("k").client.Timeout)
	assert.NotZero(t, NewOllamaProvider("").client.Timeout)
}
