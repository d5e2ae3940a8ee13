/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/UnifyEM/UEMSession/client/autherr"
	"github.com/UnifyEM/UEMSession/client/transport"
	"github.com/UnifyEM/UEMSession/common"
	"github.com/UnifyEM/UEMSession/common/schema"
)

// maxResponse bounds how much of a response body is read
const maxResponse = 1 << 20

// GetJSON sends an authorized GET to endpoint and decodes the response into out
func (s *Session) GetJSON(ctx context.Context, endpoint string, out any) error {
	return s.send(ctx, http.MethodGet, endpoint, nil, out)
}

// PostJSON sends in as JSON to endpoint and decodes the response into out.
// Either may be nil.
func (s *Session) PostJSON(ctx context.Context, endpoint string, in, out any) error {
	return s.send(ctx, http.MethodPost, endpoint, in, out)
}

func (s *Session) send(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error marshalling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	// Redirect hops are built from this context and must share the marker
	ctx, _ = transport.WithRetryMarker(ctx)
	req, err := http.NewRequestWithContext(ctx, method, s.server+endpoint, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &autherr.APIError{Code: resp.StatusCode}
		var generic schema.APIGenericResponse
		if json.Unmarshal(raw, &generic) == nil {
			apiErr.Status = generic.Status
			apiErr.Details = common.SingleLine(generic.Details)
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}
	return nil
}
