/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package refresh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/UnifyEM/UEMSession/client/autherr"
	"github.com/UnifyEM/UEMSession/common"
	"github.com/UnifyEM/UEMSession/common/schema"
)

// post sends the refresh request. It carries only what the client's cookie
// jar supplies; the bearer credential is never attached.
func (c *Coordinator) post(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBufferString("{}"))
	if err != nil {
		return "", wrapTransport(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", wrapTransport(err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wrapTransport(err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &autherr.APIError{Code: resp.StatusCode}
		var envelope schema.APIGenericResponse
		if json.Unmarshal(body, &envelope) == nil {
			apiErr.Status = envelope.Status
			apiErr.Details = common.SingleLine(envelope.Details)
		}
		return "", apiErr
	}

	var refreshResp schema.APITokenRefreshResponse
	if err = json.Unmarshal(body, &refreshResp); err != nil {
		return "", fmt.Errorf("deserialization failed: %w", err)
	}

	if refreshResp.AccessToken == "" {
		return "", errEmptyCredential
	}
	return refreshResp.AccessToken, nil
}
