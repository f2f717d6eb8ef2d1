package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sony/gobreaker"
)

type Config struct {
	Addresses []string
	Username  string
	Password  string
}

type Client struct {
	es      *elasticsearch.Client
	breaker *gobreaker.CircuitBreaker
}

type SearchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []Hit `json:"hits"`
	} `json:"hits"`
}

type Hit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

func NewClient(cfg *Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, err
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info: %s", res.Status())
	}

	return &Client{
		es: es,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "elasticsearch",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}, nil
}

// CreateIndex creates the index if it does not exist yet.
func (c *Client) CreateIndex(ctx context.Context, name, mapping string) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		exists, err := c.es.Indices.Exists([]string{name}, c.es.Indices.Exists.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		exists.Body.Close()
		if exists.StatusCode == http.StatusOK {
			return nil, nil
		}

		res, err := c.es.Indices.Create(name,
			c.es.Indices.Create.WithContext(ctx),
			c.es.Indices.Create.WithBody(strings.NewReader(mapping)),
		)
		return nil, check(res, err)
	})
	return err
}

func (c *Client) Index(ctx context.Context, index, id string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = c.breaker.Execute(func() (interface{}, error) {
		res, err := c.es.Index(index, bytes.NewReader(body),
			c.es.Index.WithContext(ctx),
			c.es.Index.WithDocumentID(id),
		)
		return nil, check(res, err)
	})
	return err
}

func (c *Client) Search(ctx context.Context, index string, query map[string]interface{}) (*SearchResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		res, err := c.es.Search(
			c.es.Search.WithContext(ctx),
			c.es.Search.WithIndex(index),
			c.es.Search.WithBody(&buf),
			c.es.Search.WithTrackTotalHits(true),
		)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()
		if res.IsError() {
			return nil, responseError(res)
		}

		var sr SearchResponse
		if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
			return nil, err
		}
		return &sr, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*SearchResponse), nil
}

func (c *Client) Delete(ctx context.Context, index, id string) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		res, err := c.es.Delete(index, id, c.es.Delete.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()
		if res.IsError() && res.StatusCode != http.StatusNotFound {
			return nil, responseError(res)
		}
		return nil, nil
	})
	return err
}

func check(res *esapi.Response, err error) error {
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError(res)
	}
	return nil
}

func responseError(res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return fmt.Errorf("elasticsearch %s: %s", res.Status(), strings.TrimSpace(string(body)))
}
