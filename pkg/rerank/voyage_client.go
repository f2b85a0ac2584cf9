package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// VoyageClient calls the Voyage AI rerank API.
type VoyageClient struct {
	apiKey string
	client *http.Client
}

func NewVoyageClient(apiKey string) *VoyageClient {
	return &VoyageClient{
		apiKey: apiKey,
		client: &http.Client{},
	}
}

func (c *VoyageClient) Available() bool {
	return c.apiKey != ""
}

type voyageRerankRequest struct {
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	Model     string   `json:"model"`
	TopK      int      `json:"top_k"`
}

type voyageRerankResponse struct {
	Data []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"data"`
}

func (c *VoyageClient) Rerank(ctx context.Context, query string, documents []string, topK int, model string) ([]Result, error) {
	if !c.Available() {
		return nil, fmt.Errorf("voyage reranker: api key not configured")
	}
	if len(documents) == 0 {
		return nil, nil
	}
	if topK > len(documents) {
		topK = len(documents)
	}

	reqJson, err := json.Marshal(voyageRerankRequest{
		Query:     query,
		Documents: documents,
		Model:     model,
		TopK:      topK,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.voyageai.com/v1/rerank", bytes.NewBuffer(reqJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voyage rerank error, code %d, body %s", res.StatusCode, string(resByte))
	}

	var parsed voyageRerankResponse
	if err := json.Unmarshal(resByte, &parsed); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(documents) {
			return nil, fmt.Errorf("voyage rerank returned out-of-range index %d", d.Index)
		}
		results = append(results, Result{Index: d.Index, RelevanceScore: d.RelevanceScore})
	}
	return results, nil
}
