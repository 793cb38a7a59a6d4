package gradio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/hunyport/huny/internal/models"
)

type callRequest struct {
	Data []any `json:"data"`
}

type callAck struct {
	EventID string `json:"event_id"`
}

// Predict sends query to the remote procedure over the established
// connection and blocks until the call completes. The optional apiName
// overrides the procedure configured at connect time. An absent remote
// value normalizes to "", never to an error. Failures are exactly one
// of two kinds: models.TransportError when the network broke,
// models.PredictionError when the space answered but the call failed.
// Predict never reconnects.
func (c *Client) Predict(ctx context.Context, query string, apiName ...string) (string, error) {
	api := c.api
	if len(apiName) > 0 && apiName[0] != "" {
		api = apiName[0]
	}
	if !strings.HasPrefix(api, "/") {
		api = "/" + api
	}
	eventID, err := c.enqueue(ctx, api, query)
	if err != nil {
		return "", err
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("call to '%v' acknowledged with event id: '%v'\n", api, eventID))
	}
	return c.await(ctx, api, eventID)
}

func (c *Client) enqueue(ctx context.Context, api, query string) (string, error) {
	jsonData, err := json.Marshal(callRequest{Data: []any{query}})
	if err != nil {
		return "", &models.PredictionError{Err: fmt.Errorf("failed to encode call request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.root+apiPrefix+api, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &models.PredictionError{Err: fmt.Errorf("failed to create call request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return "", &models.TransportError{Err: fmt.Errorf("failed to execute call request: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &models.PredictionError{Err: fmt.Errorf("unexpected status code on call: %v", resp.Status)}
	}
	var ack callAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", &models.PredictionError{Err: fmt.Errorf("failed to decode call ack: %w", err)}
	}
	if ack.EventID == "" {
		return "", &models.PredictionError{Err: fmt.Errorf("call ack carries no event id")}
	}
	return ack.EventID, nil
}

// await reads the event stream for eventID until the call either
// completes or fails. The stream is consumed in full here, callers only
// ever see one string.
func (c *Client) await(ctx context.Context, api, eventID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.root+apiPrefix+api+"/"+eventID, nil)
	if err != nil {
		return "", &models.PredictionError{Err: fmt.Errorf("failed to create result request: %w", err)}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", &models.TransportError{Err: fmt.Errorf("failed to execute result request: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &models.PredictionError{Err: fmt.Errorf("unexpected status code on result stream: %v", resp.Status)}
	}

	var event string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			switch event {
			case "complete":
				return decodeResult(data)
			case "error":
				return "", &models.PredictionError{Err: fmt.Errorf("space reported an error: %v", data)}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", &models.TransportError{Err: fmt.Errorf("result stream broke: %w", err)}
	}
	return "", &models.PredictionError{Err: fmt.Errorf("result stream ended without a complete event")}
}

// decodeResult unpacks the data payload of a complete event. The
// payload is a JSON array holding one value per output component.
func decodeResult(data string) (string, error) {
	var out []any
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return "", &models.PredictionError{Err: fmt.Errorf("failed to decode result payload '%v': %w", data, err)}
	}
	if len(out) == 0 || out[0] == nil {
		return "", nil
	}
	if s, ok := out[0].(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", out[0]), nil
}
