// Package cloudinary is a minimal client for Cloudinary's signed image
// upload endpoint. The backend only needs one call: push bytes, get back a
// hosted URL.
package cloudinary

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"
)

type Client struct {
	BaseURL    string
	CloudName  string
	APIKey     string
	APISecret  string
	Folder     string
	HTTPClient *http.Client
}

type UploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func New(cloudName, apiKey, apiSecret, folder string) *Client {
	return &Client{
		BaseURL:   "https://api.cloudinary.com",
		CloudName: cloudName,
		APIKey:    apiKey,
		APISecret: apiSecret,
		Folder:    folder,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether the credentials were provided; uploads fail
// fast with a clear message when they were not.
func (c *Client) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Upload pushes the image to Cloudinary and returns the hosted result.
// Images are capped server-side to 800x600 to keep storefront payloads
// small.
func (c *Client) Upload(publicID string, data []byte) (*UploadResponse, error) {
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	transformation := "c_limit,w_800,h_600"

	params := map[string]string{
		"folder":         c.Folder,
		"public_id":      publicID,
		"timestamp":      timestamp,
		"transformation": transformation,
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if err := writer.WriteField("api_key", c.APIKey); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.WriteField("signature", signParams(params, c.APISecret)); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	part, err := writer.CreateFormFile("file", publicID)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", c.BaseURL, c.CloudName)

	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var response UploadResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if response.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload failed: %s", response.Error.Message)
	}
	if response.SecureURL == "" {
		return nil, fmt.Errorf("cloudinary upload failed with status %d", resp.StatusCode)
	}

	return &response, nil
}

// signParams builds the SHA-1 signature Cloudinary expects: parameters
// sorted by key, joined as a query string, with the API secret appended.
// file and api_key are excluded from signing.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
