package timetable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrSolver is returned when the solver is unreachable or reports failure.
var ErrSolver = errors.New("timetable solver failed")

// maxReplyBytes caps how much of a solver reply is read.
const maxReplyBytes = 8 << 20

// Client posts requests to the solver at URL.
type Client struct {
	URL  string
	HTTP *http.Client
}

// NewClient returns a client whose requests give up after timeout.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{URL: url, HTTP: &http.Client{Timeout: timeout}}
}

// Generate sends req (with default mentor batches filled in) and returns
// the validated reply. Both the enveloped {status, timetable} reply and a
// bare division grid are accepted. An {"error": "..."} body, an "error"
// status or a non-2xx code yields ErrSolver; a bad grid yields
// ErrMalformedGrid.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req.WithDefaults())
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolver, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxReplyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read reply: %v", ErrSolver, err)
	}
	return decodeReply(res.StatusCode, raw)
}

func decodeReply(code int, raw []byte) (*Response, error) {
	var probe struct {
		Status    string          `json:"status"`
		Timetable json.RawMessage `json:"timetable"`
		Message   string          `json:"message"`
		Error     string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		if code/100 != 2 {
			return nil, fmt.Errorf("%w: http %d", ErrSolver, code)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedGrid, err)
	}

	msg := probe.Message
	if msg == "" {
		msg = probe.Error
	}
	if code/100 != 2 || probe.Error != "" || probe.Status == StatusError {
		if msg == "" {
			msg = fmt.Sprintf("http %d", code)
		}
		return nil, fmt.Errorf("%w: %s", ErrSolver, msg)
	}

	out := &Response{Status: StatusSuccess, Message: msg}
	switch {
	case probe.Status == "" && len(probe.Timetable) == 0:
		// bare grid
		if err := json.Unmarshal(raw, &out.Timetable); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedGrid, err)
		}
	case probe.Status != StatusSuccess:
		return nil, fmt.Errorf("%w: unknown status %q", ErrMalformedGrid, probe.Status)
	default:
		if err := json.Unmarshal(probe.Timetable, &out.Timetable); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedGrid, err)
		}
	}
	if err := out.Timetable.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
