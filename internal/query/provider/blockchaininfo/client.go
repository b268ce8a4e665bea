// Package blockchaininfo reads transactions and addresses from the
// blockchain.info explorer API.
package blockchaininfo

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/ratelimit"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider"
)

// DefaultBaseURL is the public explorer endpoint.
const DefaultBaseURL = "https://blockchain.info"

// Config configures the explorer client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond paces requests; zero or less disables pacing.
	RequestsPerSecond int
	// AddressTxLimit bounds the address history returned per lookup.
	AddressTxLimit int
}

// Client implements provider.Provider over the explorer HTTP API.
type Client struct {
	http    *resty.Client
	limiter ratelimit.Limiter
	txLimit int
}

// NewClient builds a Client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("Accept", "application/json"),
		limiter: limiter,
		txLimit: cfg.AddressTxLimit,
	}
}

// FetchTransaction returns the transaction with the given hash.
func (c *Client) FetchTransaction(ctx context.Context, hash string) (*model.Transaction, error) {
	var raw rawTransaction
	req := c.http.R().SetPathParam("hash", hash)
	if err := c.get(ctx, req, "/rawtx/{hash}", &raw); err != nil {
		return nil, fmt.Errorf("transaction %s: %w", hash, err)
	}
	return model.NewTransaction(raw.toModel()), nil
}

// FetchAddress returns the address with its transaction history.
func (c *Client) FetchAddress(ctx context.Context, address string) (*model.Address, error) {
	var raw rawAddress
	req := c.http.R().SetPathParam("address", address)
	if c.txLimit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(c.txLimit))
	}
	if err := c.get(ctx, req, "/rawaddr/{address}", &raw); err != nil {
		return nil, fmt.Errorf("address %s: %w", address, err)
	}
	return model.NewAddress(raw.toModel()), nil
}

func (c *Client) get(ctx context.Context, req *resty.Request, path string, result any) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	resp, err := req.
		SetContext(ctx).
		SetResult(result).
		ForceContentType("application/json").
		Get(path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", provider.ErrUnavailable, err)
	}

	switch status := resp.StatusCode(); {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound, status == http.StatusBadRequest:
		return fmt.Errorf("%w: status %d", provider.ErrNotFound, status)
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", provider.ErrUnavailable, status)
	default:
		return fmt.Errorf("unexpected status %d", status)
	}
}

// wait blocks until the limiter grants a request slot or ctx is done. A slot
// granted after ctx is done is dropped.
func (c *Client) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	granted := make(chan struct{})
	go func() {
		c.limiter.Take()
		close(granted)
	}()

	select {
	case <-granted:
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
