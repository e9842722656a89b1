// Package client talks to the remote transaction-processing microservice.
// Response shapes are inconsistent across revisions, so everything is decoded
// into loose maps and normalized upstream of here, in the service layer.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrUpstream marks transport failures and non-2xx answers from the
	// processor.
	ErrUpstream = errors.New("processor unavailable")
	// ErrNotFound marks a 404 for a single-record lookup.
	ErrNotFound = errors.New("not found")
)

// Processor is a thin client over the two upstream API bases: the
// transaction store and the history log. No auth, no retries, one fixed
// timeout.
type Processor struct {
	httpClient      *http.Client
	transactionBase string
	historyBase     string
}

func NewProcessor(transactionBase, historyBase string, timeout time.Duration) *Processor {
	return &Processor{
		httpClient:      &http.Client{Timeout: timeout},
		transactionBase: transactionBase,
		historyBase:     historyBase,
	}
}

// Ping checks that the transaction API answers at all.
func (c *Processor) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodOptions, c.transactionBase, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	resp.Body.Close()
	return nil
}

// Recent fetches every transaction created inside [desde, hasta], both
// encoded as "YYYY-MM-DDTHH:MM:SS".
func (c *Processor) Recent(ctx context.Context, desde, hasta string) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("%s/recientes?desde=%s&hasta=%s",
		c.transactionBase, url.QueryEscape(desde), url.QueryEscape(hasta))
	return c.getList(ctx, endpoint, nil)
}

// Transaction fetches the primary record for one transaction code.
func (c *Processor) Transaction(ctx context.Context, code string) (map[string]any, error) {
	body, err := c.get(ctx, c.transactionBase+"/"+url.PathEscape(code), nil)
	if err != nil {
		return nil, err
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("%w: malformed transaction body: %v", ErrUpstream, err)
	}
	return record, nil
}

// History fetches the status-transition log for one transaction code.
func (c *Processor) History(ctx context.Context, code string) ([]map[string]any, error) {
	return c.getList(ctx, c.historyBase+"/transaccion/"+url.PathEscape(code), nil)
}

// Fraudulent fetches the dedicated fraud listing. A cache-busting timestamp
// and no-cache headers keep intermediaries from serving stale alerts.
func (c *Processor) Fraudulent(ctx context.Context) ([]map[string]any, error) {
	endpoint := c.historyBase + "/fraude?_=" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	return c.getList(ctx, endpoint, map[string]string{
		"Cache-Control": "no-cache",
		"Pragma":        "no-cache",
	})
}

func (c *Processor) getList(ctx context.Context, endpoint string, headers map[string]string) ([]map[string]any, error) {
	body, err := c.get(ctx, endpoint, headers)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

func (c *Processor) get(ctx context.Context, endpoint string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		log.Warn().Int("status", resp.StatusCode).Str("url", endpoint).Msg("processor request failed")
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUpstream, err)
	}
	return body, nil
}

// decodeList tolerates the processor's occasional double-encoded responses,
// where a JSON array arrives wrapped in a JSON string.
func decodeList(body []byte) ([]map[string]any, error) {
	var records []map[string]any
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var wrapped string
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if err := json.Unmarshal([]byte(wrapped), &records); err == nil {
			return records, nil
		}
	}

	return nil, fmt.Errorf("%w: response is not a transaction list", ErrUpstream)
}
