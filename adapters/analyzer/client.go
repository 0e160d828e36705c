package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"dataview/domain/analysis"
	"dataview/internal/errors"
	"dataview/ports"
)

// Generic user-facing messages. Raw transport errors never leak into these;
// they go to the log instead.
const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
	msgUploadFailed   = "Upload failed"
	msgUnreachable    = "Could not reach the analysis service"
)

// uploadFieldName is the multipart field the service reads the file from.
const uploadFieldName = "file"

// Client is the HTTP implementation of ports.AnalyzerPort.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an analysis service client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8000"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ ports.AnalyzerPort = (*Client)(nil)

// Login exchanges credentials for an access token via form-encoded POST.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "build login request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, status, err := c.do(req)
	if err != nil {
		return "", err
	}
	if !is2xx(status) {
		return "", errors.AuthError(serverMessage(body, msgLoginFailed))
	}
	return parseToken(body)
}

// Register creates an account via JSON POST and returns an access token.
func (c *Client) Register(ctx context.Context, email, password, name string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal register request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/register", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "build register request")
	}
	req.Header.Set("Content-Type", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return "", err
	}
	if !is2xx(status) {
		return "", errors.AuthError(serverMessage(body, msgRegisterFailed))
	}
	return parseToken(body)
}

// Upload submits the file as multipart form data. The bearer header is
// attached only when a token is present (anonymous mode otherwise).
func (c *Client) Upload(ctx context.Context, file ports.UploadFile, token string) (*analysis.Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(uploadFieldName, file.Name)
	if err != nil {
		return nil, errors.Wrap(err, "build multipart body")
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, errors.Wrap(err, "read upload content")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, errors.Wrap(err, "build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	setBearer(req, token)

	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, errors.ServerError(serverMessage(body, msgUploadFailed))
	}

	var result analysis.Result
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("[Analyzer] upload response unmarshal failed: %v", err)
		return nil, errors.ServerError(msgUploadFailed)
	}
	return &result, nil
}

// History lists the caller's prior analyses.
func (c *Client) History(ctx context.Context, token string) ([]analysis.HistoryEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files/history", nil)
	if err != nil {
		return nil, errors.Wrap(err, "build history request")
	}
	setBearer(req, token)

	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, errors.ServerError(serverMessage(body, "History fetch failed"))
	}

	var entries []analysis.HistoryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, errors.Wrap(err, "unmarshal history response")
	}
	return entries, nil
}

// Result fetches the full record of a prior analysis by id.
func (c *Client) Result(ctx context.Context, id, token string) (*analysis.Result, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.ValidationError("missing analysis id")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build result request")
	}
	setBearer(req, token)

	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, errors.NotFound("analysis")
	}
	if !is2xx(status) {
		return nil, errors.ServerError(serverMessage(body, "Could not load analysis"))
	}

	var result analysis.Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrap(err, "unmarshal result response")
	}
	if result.ID == "" {
		result.ID = id
	}
	return &result, nil
}

// ResolveArtifact resolves a service-relative artifact path (cleaned file,
// report) against the base URL. Absolute URLs pass through unchanged.
func (c *Client) ResolveArtifact(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.baseURL + ref
}

// do executes the request and returns the body and status. Transport
// failures (no response at all) map to a generic NetworkError; the raw
// cause is logged, never surfaced.
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	reqID := uuid.NewString()[:8]
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[Analyzer] (%s) %s %s transport error: %v", reqID, req.Method, req.URL.Path, err)
		return nil, 0, errors.NetworkError(msgUnreachable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[Analyzer] (%s) %s %s read error: %v", reqID, req.Method, req.URL.Path, err)
		return nil, 0, errors.NetworkError(msgUnreachable)
	}

	log.Printf("[Analyzer] (%s) %s %s -> %d (%d bytes)", reqID, req.Method, req.URL.Path, resp.StatusCode, len(body))
	return body, resp.StatusCode, nil
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// serverMessage extracts a user-facing message from an error body with
// priority detail, then error, then the fallback.
func serverMessage(body []byte, fallback string) string {
	var parsed struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return fallback
}

func parseToken(body []byte) (string, error) {
	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errors.Wrap(err, "unmarshal token response")
	}
	if parsed.AccessToken == "" {
		return "", errors.AuthError("auth response missing access_token")
	}
	return parsed.AccessToken, nil
}
