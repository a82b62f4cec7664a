package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fekuna/omnipos-register-service/internal/model"
)

type Config struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
	// Transport overrides the HTTP transport, e.g. in tests.
	Transport http.RoundTripper
}

// Client keeps a searchable copy of the product catalog in Elasticsearch.
type Client struct {
	es    *elasticsearch.Client
	index string
}

func NewClient(cfg *Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, err
	}

	res, err := es.Info()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info: %s", res.Status())
	}
	return &Client{es: es, index: cfg.Index}, nil
}

const mapping = `{
	"mappings": {
		"properties": {
			"name":        { "type": "text" },
			"sku":         { "type": "keyword" },
			"category_id": { "type": "keyword" },
			"sell_price":  { "type": "double" },
			"is_active":   { "type": "boolean" },
			"updated_at":  { "type": "date" }
		}
	}
}`

type document struct {
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	CategoryID string  `json:"category_id"`
	SellPrice  float64 `json:"sell_price"`
	IsActive   bool    `json:"is_active"`
	UpdatedAt  string  `json:"updated_at"`
}

func (c *Client) EnsureIndex(ctx context.Context) error {
	res, err := c.es.Indices.Exists([]string{c.index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = c.es.Indices.Create(c.index,
		c.es.Indices.Create.WithBody(strings.NewReader(mapping)),
		c.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	return checkResponse("create index", res)
}

func (c *Client) Index(ctx context.Context, p *model.Product) error {
	price, _ := p.SellPrice.Float64()
	body, err := json.Marshal(document{
		Name:       p.Name,
		SKU:        p.SKU,
		CategoryID: p.CategoryID,
		SellPrice:  price,
		IsActive:   p.IsActive,
		UpdatedAt:  p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return err
	}

	res, err := c.es.Index(c.index, bytes.NewReader(body),
		c.es.Index.WithDocumentID(p.ID),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	return checkResponse("index "+p.ID, res)
}

// Delete ignores documents that are already gone.
func (c *Client) Delete(ctx context.Context, id string) error {
	res, err := c.es.Delete(c.index, id, c.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	if res.StatusCode == http.StatusNotFound {
		res.Body.Close()
		return nil
	}
	return checkResponse("delete "+id, res)
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

func (c *Client) Search(ctx context.Context, query string, from, size int) ([]string, int, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"type":   "bool_prefix",
				"fields": []string{"name^3", "sku"},
			},
		},
		"from":    from,
		"_source": false,
	}
	if size > 0 {
		q["size"] = size
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, 0, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
		c.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("search: %s", res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, parsed.Hits.Total.Value, nil
}

func checkResponse(op string, res *esapi.Response) error {
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%s: %s: %s", op, res.Status(), bytes.TrimSpace(msg))
	}
	return nil
}
