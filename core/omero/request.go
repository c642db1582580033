// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package omero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/idr/idroi/core/errorwithstatus"
)

type errorResponse struct {
	Message string `json:"message"`
}

func (c *Client) makeURL(path string, query url.Values) string {
	u := c.baseURL + apiPath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.makeURL(path, query), body)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if len(contentType) > 0 {
		req.Header.Set("Content-Type", contentType)
	}

	// Django wants both of these on anything that isn't a GET
	if method != http.MethodGet {
		req.Header.Set("X-CSRFToken", c.csrf)
		req.Header.Set("Referer", c.baseURL+"/")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response to %v %v: %v", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(respBody))
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && len(errResp.Message) > 0 {
			msg = errResp.Message
		}
		return errorwithstatus.MakeStatusError(resp.StatusCode, fmt.Errorf("%v %v returned %v: %v", method, path, resp.StatusCode, msg))
	}

	if out == nil || len(respBody) <= 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response to %v %v: %v", method, path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), out)
}

func (c *Client) postJSON(ctx context.Context, path string, in interface{}, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, "application/json", bytes.NewReader(body), out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil, nil)
}

type pageMeta struct {
	Offset     int `json:"offset"`
	Limit      int `json:"limit"`
	MaxLimit   int `json:"maxLimit"`
	TotalCount int `json:"totalCount"`
}

type listResponse[T any] struct {
	Data []T       `json:"data"`
	Meta pageMeta `json:"meta"`
}

// getAllPages - keeps asking for the next page until we have totalCount items (or a page comes back empty)
func getAllPages[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	result := []T{}

	for {
		query := url.Values{}
		query.Set("offset", fmt.Sprintf("%v", len(result)))
		query.Set("limit", fmt.Sprintf("%v", pageLimit))
		if len(c.group) > 0 {
			query.Set("group", c.group)
		}

		var page listResponse[T]
		if err := c.getJSON(ctx, path, query, &page); err != nil {
			return nil, err
		}

		result = append(result, page.Data...)

		if len(page.Data) <= 0 || len(result) >= page.Meta.TotalCount {
			break
		}
	}

	return result, nil
}
