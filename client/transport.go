package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/httpflow/admission"
	"github.com/kbukum/httpflow/mapper"
	"github.com/kbukum/httpflow/resilience"
)

// perform runs one submission inside the admission pool. The done
// callback fires exactly once, even if the exchange panics, so the
// permit always returns to the pool.
func (c *Client) perform(ctx context.Context, body any, done admission.DoneFunc) {
	defer func() {
		if r := recover(); r != nil {
			done(nil, NewTransportError(fmt.Errorf("panic during request: %v", r)))
		}
	}()

	var value any
	var err error
	if c.cfg.Retry != nil {
		value, err = resilience.Retry(ctx, c.retryConfig(), func() (any, error) {
			return c.exchange(ctx, body)
		})
	} else {
		value, err = c.exchange(ctx, body)
	}
	done(value, err)
}

func (c *Client) retryConfig() resilience.RetryConfig {
	cfg := *c.cfg.Retry
	if cfg.RetryIf == nil {
		cfg.RetryIf = IsRetryable
	}
	return cfg
}

// exchange performs one HTTP round trip and materializes the response.
func (c *Client) exchange(ctx context.Context, body any) (any, error) {
	res, err := c.req.resolve()
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, NewTransportError(err)
		}
	}

	httpReq, err := c.buildRequest(ctx, res, body)
	if err != nil {
		return nil, err
	}

	reqID := uuid.NewString()
	start := time.Now()
	c.logRequest(reqID, res)

	h := c.factory()

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		h.OnError(err)
		c.logFailure(reqID, err, time.Since(start))
		return nil, classify(err, res.url)
	}
	defer resp.Body.Close()

	value, err := c.drive(h, resp)
	elapsed := time.Since(start)
	if err != nil {
		c.logFailure(reqID, err, elapsed)
		return nil, classify(err, res.url)
	}

	c.logResponse(reqID, resp.StatusCode, elapsed)
	return value, nil
}

// buildRequest encodes the body and assembles the http.Request.
func (c *Client) buildRequest(ctx context.Context, res resolved, body any) (*http.Request, error) {
	var reader io.Reader
	contentType := ""

	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	case []byte:
		reader = bytes.NewReader(b)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := c.bodyMap.Encode(body)
		if err != nil {
			return nil, NewConfigError(fmt.Sprintf("encode request body: %v", err))
		}
		reader = bytes.NewReader(payload)
		contentType = c.bodyMap.ContentType()
	}

	httpReq, err := http.NewRequestWithContext(ctx, res.method, res.url, reader)
	if err != nil {
		return nil, NewConfigError(fmt.Sprintf("build request: %v", err))
	}

	for k, vs := range res.header {
		httpReq.Header[k] = vs
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	return httpReq, nil
}

// drive feeds the response through the handler callbacks. Abort from
// any callback skips the remaining phases; the handler still completes.
func (c *Client) drive(h mapper.Handler, resp *http.Response) (any, error) {
	next, err := h.OnStatus(resp.StatusCode, resp.Status)
	if err != nil {
		return nil, err
	}
	if next == mapper.Continue {
		next, err = h.OnHeaders(resp.Header)
		if err != nil {
			return nil, err
		}
	}

	if next == mapper.Continue {
		buf := make([]byte, c.cfg.ChunkSize)
		for {
			n, rerr := resp.Body.Read(buf)
			if n > 0 {
				step, herr := h.OnBodyChunk(buf[:n])
				if herr != nil {
					return nil, herr
				}
				if step == mapper.Abort {
					break
				}
			}
			if rerr == io.EOF {
				break
			}
			if rerr != nil {
				h.OnError(rerr)
				return nil, rerr
			}
		}
	}

	return h.OnComplete()
}
