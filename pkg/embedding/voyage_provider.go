package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// VoyageProvider calls the Voyage AI embeddings API.
type VoyageProvider struct {
	apiKey string
	client *http.Client
}

func NewVoyageProvider(apiKey string) *VoyageProvider {
	return &VoyageProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *VoyageProvider) Name() string {
	return "voyage"
}

// Voyage model dimensions. voyage-3-lite trades accuracy for a smaller
// footprint; everything else in the family is 1024.
var voyageDimensions = map[string]int{
	"voyage-3":              1024,
	"voyage-3-large":        1024,
	"voyage-3-lite":         512,
	"voyage-code-3":         1024,
	"voyage-finance-2":      1024,
	"voyage-law-2":          1024,
	"voyage-multilingual-2": 1024,
}

func (p *VoyageProvider) Dimension(model string) int {
	if dim, ok := voyageDimensions[model]; ok {
		return dim
	}
	return 1024
}

type voyageEmbedRequest struct {
	Input     []string `json:"input"`
	Model     string   `json:"model"`
	InputType string   `json:"input_type"` // "query" or "document"
}

type voyageEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *VoyageProvider) EmbedQuery(ctx context.Context, text string, model string) ([]float32, error) {
	vectors, err := p.embed(ctx, []string{text}, model, "query")
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (p *VoyageProvider) EmbedDocuments(ctx context.Context, texts []string, model string) ([][]float32, error) {
	return p.embed(ctx, texts, model, "document")
}

func (p *VoyageProvider) embed(ctx context.Context, texts []string, model string, inputType string) ([][]float32, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("voyage: %w", ErrProviderUnavailable)
	}
	if len(texts) == 0 {
		return nil, nil
	}

	reqJson, err := json.Marshal(voyageEmbedRequest{
		Input:     texts,
		Model:     model,
		InputType: inputType,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.voyageai.com/v1/embeddings", bytes.NewBuffer(reqJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voyage embedding error, code %d, body %s", res.StatusCode, string(resByte))
	}

	var parsed voyageEmbedResponse
	if err := json.Unmarshal(resByte, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("voyage returned %d embeddings for %d inputs", len(parsed.Data), len(texts))
	}

	vectors := make([][]float32, len(parsed.Data))
	for i, d := range parsed.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}
