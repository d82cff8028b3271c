/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:err113,revive // dynamic errors and naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
)

// APIClient drives the wanted poster API over plain HTTP. Methods return an
// error only for transport failures (connection refused, timeout, unreadable
// body); HTTP responses come back raw so callers can assert exact status
// codes and payloads. This keeps infrastructure failures distinct from
// contract violations.
type APIClient struct {
	baseURL   string
	client    *http.Client
	config    *TestConfig
	endpoints *Endpoints
}

// APIResponse captures everything a conformance assertion needs from a
// single exchange.
type APIResponse struct {
	StatusCode  int
	Header      http.Header
	Body        []byte
	Duration    time.Duration
	TraceParent string
}

// ContentType returns the response Content-Type header.
func (r *APIResponse) ContentType() string {
	return r.Header.Get("Content-Type")
}

// DecodeJSON unmarshals the response body into v.
func (r *APIResponse) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response body %q: %w", string(r.Body), err)
	}

	return nil
}

// ErrorMessage decodes the error envelope of a 4xx/5xx response. Returns the
// raw body when the envelope cannot be decoded so failure messages always
// show what the server actually said.
func (r *APIResponse) ErrorMessage() string {
	var envelope ErrorResponse
	if err := json.Unmarshal(r.Body, &envelope); err != nil || envelope.Error == "" {
		return string(r.Body)
	}

	return envelope.Error
}

func NewAPIClient(baseURL string) *APIClient {
	config := LoadTestConfig()
	if baseURL == "" {
		baseURL = config.BaseURL
	}

	return newAPIClientWithConfig(config, baseURL)
}

func NewAPIClientWithConfig(config *TestConfig) *APIClient {
	return newAPIClientWithConfig(config, config.BaseURL)
}

// common constructor logic.
func newAPIClientWithConfig(config *TestConfig, baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:    config,
		endpoints: NewEndpoints(),
	}
}

// BaseURL returns the configured target.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// logError logs a transport error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR duration=%s traceparent=%s error=%v\n", method, path, duration, traceParent, err)
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// Each request carries a fresh trace ID so a failure can be correlated with
// the server's logs.
func generateTraceID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)

	return hex.EncodeToString(b)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)

	return hex.EncodeToString(b)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// doRequest issues a single request against the target. The URL may be a
// path relative to the configured base URL or an absolute URL (used when
// following signed URLs).
func (c *APIClient) doRequest(ctx context.Context, method, rawURL, contentType string, body io.Reader) (*APIResponse, error) {
	fullURL := rawURL
	if strings.HasPrefix(rawURL, "/") {
		fullURL = c.baseURL + rawURL
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()

	resp, err := c.client.Do(req)

	duration := time.Since(start)

	if err != nil {
		c.logError(method, rawURL, duration, traceParent, err)
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(method, rawURL, duration, traceParent, err)
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, rawURL, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", method, rawURL, string(respBody))
	}

	return &APIResponse{
		StatusCode:  resp.StatusCode,
		Header:      resp.Header,
		Body:        respBody,
		Duration:    duration,
		TraceParent: traceParent,
	}, nil
}

// Health probes the liveness endpoint.
func (c *APIClient) Health(ctx context.Context) (*APIResponse, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.Health(), "", nil)
}

// UploadImage uploads a file as a multipart POST to /images.
func (c *APIClient) UploadImage(ctx context.Context, file UploadFile) (*APIResponse, error) {
	body, contentType, err := encodeMultipart(file)
	if err != nil {
		return nil, err
	}

	return c.doRequest(ctx, http.MethodPost, c.endpoints.UploadImage(), contentType, body)
}

// UploadNothing issues the upload POST with no multipart body at all, for
// probing the missing-file rejection.
func (c *APIClient) UploadNothing(ctx context.Context) (*APIResponse, error) {
	return c.doRequest(ctx, http.MethodPost, c.endpoints.UploadImage(), "", nil)
}

// GetImageStatus fetches the processing status of a record.
func (c *APIClient) GetImageStatus(ctx context.Context, imageID string) (*APIResponse, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.ImageStatus(imageID), "", nil)
}

// DownloadImage fetches the rendered poster for a record.
func (c *APIClient) DownloadImage(ctx context.Context, imageID string) (*APIResponse, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.DownloadImage(imageID), "", nil)
}

// TriggerProcessing asks the API to start rendering a record.
func (c *APIClient) TriggerProcessing(ctx context.Context, imageID string) (*APIResponse, error) {
	return c.doRequest(ctx, http.MethodPost, c.endpoints.ProcessImage(imageID), "", nil)
}

// ListImages fetches the admin listing. A nil query lists with server
// defaults.
func (c *APIClient) ListImages(ctx context.Context, query *ListImagesQuery) (*APIResponse, error) {
	path := c.endpoints.ListImages()
	if query != nil {
		if encoded := query.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}

	return c.doRequest(ctx, http.MethodGet, path, "", nil)
}

// GetSignedURL requests a time-limited access URL for a record.
func (c *APIClient) GetSignedURL(ctx context.Context, imageID string) (*APIResponse, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.SignedURL(imageID), "", nil)
}

// Get fetches an absolute URL, typically one returned by the signed URL
// endpoint.
func (c *APIClient) Get(ctx context.Context, rawURL string) (*APIResponse, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, fmt.Errorf("not an absolute URL: %q", rawURL)
	}

	return c.doRequest(ctx, http.MethodGet, rawURL, "", nil)
}

// encodeMultipart renders a single-file multipart/form-data body with an
// explicit per-part content type, matching what a browser upload sends.
func encodeMultipart(file UploadFile) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.FieldName, file.Filename))
	header.Set("Content-Type", file.ContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("creating multipart part: %w", err)
	}

	if _, err := part.Write(file.Data); err != nil {
		return nil, "", fmt.Errorf("writing multipart payload: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}
