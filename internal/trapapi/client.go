package trapapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/trapmeta/internal/apperrors"
)

// API is the set of server calls the editor makes. *Client implements it;
// tests substitute fakes.
type API interface {
	BrowseFolders(ctx context.Context, path string) (Listing, error)
	LoadFolder(ctx context.Context, path string) (int, error)
	FetchImage(ctx context.Context, index int) (ImageInfo, error)
	FetchImageFile(ctx context.Context, index int, stamp int64) ([]byte, error)
	SaveMetadata(ctx context.Context, index int, metadata Metadata) (string, error)
	ExtractFooter(ctx context.Context, index int) (Metadata, error)
	IdentifySpecies(ctx context.Context, index int, selection Selection) (Identification, error)
	ParseManualFooter(ctx context.Context, text string) (Metadata, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the metadata editor HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const (
	defaultServer    = "127.0.0.1:5000"
	defaultUserAgent = "trapmeta/0.1"

	// MaxImageBytes caps a single image download.
	MaxImageBytes = 64 << 20
	maxJSONBytes  = 8 << 20

	requestIDHeader = "X-Request-ID"
)

// NewClient builds a Client for the server base URL. A zero timeout leaves
// requests bounded only by their context.
func NewClient(server string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		logger:    logger,
	}, nil
}

// BaseURL returns the normalized server address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// BrowseFolders lists path, or the server's default root when path is blank.
func (c *Client) BrowseFolders(ctx context.Context, path string) (Listing, error) {
	values := url.Values{}
	if p := strings.TrimSpace(path); p != "" {
		values.Set("path", p)
	}
	rel := &url.URL{Path: "/api/browse_folders", RawQuery: values.Encode()}
	var payload Listing
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return Listing{}, err
	}
	return payload, nil
}

// LoadFolder asks the server to scan path and returns the image count.
func (c *Client) LoadFolder(ctx context.Context, path string) (int, error) {
	var payload loadFolderResponse
	if err := c.do(ctx, http.MethodPost, "/api/load_folder", loadFolderRequest{FolderPath: path}, &payload); err != nil {
		return 0, err
	}
	return payload.Count, nil
}

// FetchImage retrieves the descriptive fields and metadata for index.
func (c *Client) FetchImage(ctx context.Context, index int) (ImageInfo, error) {
	var payload ImageInfo
	if err := c.do(ctx, http.MethodGet, "/api/image/"+strconv.Itoa(index), nil, &payload); err != nil {
		return ImageInfo{}, err
	}
	return payload, nil
}

// FetchImageFile downloads the raw image bytes. stamp is sent as the t query
// parameter so caches between client and server never reuse an old folder's file.
func (c *Client) FetchImageFile(ctx context.Context, index int, stamp int64) ([]byte, error) {
	values := url.Values{}
	values.Set("t", strconv.FormatInt(stamp, 10))
	rel := &url.URL{Path: "/api/image_file/" + strconv.Itoa(index), RawQuery: values.Encode()}

	resp, requestID, err := c.send(ctx, http.MethodGet, rel, nil, "image/*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, apperrors.Server(fmt.Sprintf("image %d: server returned status %d", index, resp.StatusCode))
	}
	limited := &io.LimitedReader{R: resp.Body, N: MaxImageBytes + 1}
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, apperrors.Transport("read image", err)
	}
	if len(data) > MaxImageBytes {
		return nil, apperrors.Server(fmt.Sprintf("image %d exceeds %d MiB", index, MaxImageBytes>>20))
	}
	c.logger.Debug("image downloaded", "index", index, "bytes", len(data), "request_id", requestID)
	return data, nil
}

// SaveMetadata persists metadata for index and returns the server's message.
func (c *Client) SaveMetadata(ctx context.Context, index int, metadata Metadata) (string, error) {
	if metadata == nil {
		metadata = Metadata{}
	}
	var payload envelope
	if err := c.do(ctx, http.MethodPost, "/api/save_metadata", saveMetadataRequest{Index: index, Metadata: metadata}, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// ExtractFooter asks the server to read the footer band printed on the image.
func (c *Client) ExtractFooter(ctx context.Context, index int) (Metadata, error) {
	var payload footerResponse
	if err := c.do(ctx, http.MethodGet, "/api/extract_footer/"+strconv.Itoa(index), nil, &payload); err != nil {
		return nil, err
	}
	return payload.FooterMetadata, nil
}

// IdentifySpecies submits a natural-space region of image index for identification.
func (c *Client) IdentifySpecies(ctx context.Context, index int, selection Selection) (Identification, error) {
	var payload identifyResponse
	if err := c.do(ctx, http.MethodPost, "/api/identify_species", identifyRequest{ImageIndex: index, Selection: selection}, &payload); err != nil {
		return Identification{}, err
	}
	return payload.Identification, nil
}

// ParseManualFooter parses footer text typed by the user.
func (c *Client) ParseManualFooter(ctx context.Context, text string) (Metadata, error) {
	var payload footerResponse
	if err := c.do(ctx, http.MethodPost, "/api/parse_manual_footer", manualFooterRequest{FooterText: text}, &payload); err != nil {
		return nil, err
	}
	return payload.FooterMetadata, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	resp, requestID, err := c.send(ctx, method, rel, body, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBytes))
	if err != nil {
		return apperrors.Transport("read response", err)
	}

	var env envelope
	_ = json.Unmarshal(data, &env)

	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(env.Error)
		if msg == "" {
			msg = fmt.Sprintf("api %s returned status %d", rel.Path, resp.StatusCode)
		}
		c.logger.Warn("api error status", "path", rel.Path, "status", resp.StatusCode, "request_id", requestID, "error", msg)
		return apperrors.Server(msg)
	}
	if env.failed() {
		c.logger.Warn("api reported failure", "path", rel.Path, "request_id", requestID, "error", env.Error)
		return apperrors.Server(env.Error)
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return apperrors.Transport("decode response", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method string, rel *url.URL, body any, accept string) (*http.Response, string, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, "", apperrors.Transport("encode request", err)
		}
		reader = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, "", apperrors.Transport("create request", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "method", method, "path", rel.Path, "request_id", requestID, "error", err)
		return nil, requestID, apperrors.Transport(method+" "+rel.Path, err)
	}
	c.logger.Debug("api request",
		"method", method,
		"path", rel.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)
	return resp, requestID, nil
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse server %q: missing host", server)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
