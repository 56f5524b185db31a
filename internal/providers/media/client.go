// Package media uploads files to a Cloudinary-style hosted media store,
// optionally applying a named transformation during upload.
package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// Transformations understood by the media store.
const (
	TransformBackgroundRemoval = "e_background_removal"
)

// ObjectRemovalTransform builds the generative object-removal transformation
// for the described object.
func ObjectRemovalTransform(object string) string {
	return "e_gen_remove:prompt_" + strings.TrimSpace(object)
}

// Options configures the media store client.
type Options struct {
	CloudName  string
	APIKey     string
	APISecret  string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Now        func() time.Time
}

// Client performs signed uploads against the media store's REST API.
type Client struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
	client    *http.Client
	now       func() time.Time
}

// UploadRequest describes a single upload. Data is the raw file payload; MIME
// drives the data-URI encoding. ResourceType defaults to "image".
type UploadRequest struct {
	Data           []byte
	MIME           string
	ResourceType   string
	Transformation string
	Format         string
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// NewClient validates the options and constructs a Client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.CloudName) == "" {
		return nil, errors.New("media: cloud name is required")
	}
	if strings.TrimSpace(opts.APIKey) == "" || strings.TrimSpace(opts.APISecret) == "" {
		return nil, errors.New("media: api credentials are required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.cloudinary.com"
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		cloudName: strings.TrimSpace(opts.CloudName),
		apiKey:    strings.TrimSpace(opts.APIKey),
		apiSecret: strings.TrimSpace(opts.APISecret),
		baseURL:   baseURL,
		client:    client,
		now:       now,
	}, nil
}

// Upload sends the file, applies the requested transformation, and returns the
// hosted secure URL.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (string, error) {
	if len(req.Data) == 0 {
		return "", errors.New("media: file payload is required")
	}
	resourceType := req.ResourceType
	if resourceType == "" {
		resourceType = "image"
	}
	mimeType := req.MIME
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(req.Data))
	timestamp := strconv.FormatInt(c.now().Unix(), 10)

	signed := map[string]string{"timestamp": timestamp}
	if req.Transformation != "" {
		signed["transformation"] = req.Transformation
	}
	if req.Format != "" {
		signed["format"] = req.Format
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	fields := map[string]string{
		"file":      dataURI,
		"api_key":   c.apiKey,
		"signature": c.sign(signed),
	}
	for k, v := range signed {
		fields[k] = v
	}
	for k, v := range fields {
		if err := form.WriteField(k, v); err != nil {
			return "", fmt.Errorf("media: build form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("media: close form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/%s/upload", c.baseURL, c.cloudName, resourceType)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("media: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("media: http request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("media: upload status %d", resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("media: decode response: %w", err)
	}
	if out.SecureURL == "" {
		return "", errors.New("media: upload returned no url")
	}
	return out.SecureURL, nil
}

// sign produces the API signature: signed params sorted by key, concatenated
// as k=v pairs joined with &, followed by the secret, SHA-1 hex encoded.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
