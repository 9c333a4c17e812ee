package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
)

// Request is a fully translated engine query.
type Request struct {
	Text   string
	Filter string
	Sort   []string
	Limit  int
	Offset int
	Facets []string
}

type Result struct {
	Hits             []map[string]any
	EstimatedTotal   int64
	Facets           map[string]map[string]int64
	ProcessingTimeMs int64
}

type Client struct {
	ms    meilisearch.ServiceManager
	index string
}

func NewClient(host, apiKey, index string) *Client {
	return &Client{
		ms:    meilisearch.New(host, meilisearch.WithAPIKey(apiKey)),
		index: index,
	}
}

func (c *Client) Execute(ctx context.Context, req Request) (*Result, error) {
	sr := &meilisearch.SearchRequest{
		Limit:  int64(req.Limit),
		Offset: int64(req.Offset),
		Sort:   req.Sort,
		Facets: req.Facets,
	}
	if req.Filter != "" {
		sr.Filter = req.Filter
	}

	resp, err := c.ms.Index(c.index).SearchWithContext(ctx, req.Text, sr)
	if err != nil {
		return nil, fmt.Errorf("meilisearch search %s: %w", c.index, err)
	}

	out := &Result{
		EstimatedTotal:   resp.EstimatedTotalHits,
		ProcessingTimeMs: resp.ProcessingTimeMs,
	}
	// hits and facets are reshaped through JSON so the relay stays schema-agnostic
	if err := reshape(resp.Hits, &out.Hits); err != nil {
		return nil, fmt.Errorf("decode hits: %w", err)
	}
	if err := reshape(resp.FacetDistribution, &out.Facets); err != nil {
		return nil, fmt.Errorf("decode facets: %w", err)
	}
	if out.Hits == nil {
		out.Hits = []map[string]any{}
	}

	return out, nil
}

func (c *Client) Healthy(_ context.Context) bool {
	return c.ms.IsHealthy()
}

func reshape(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
