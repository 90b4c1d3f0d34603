package susi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meysamhadeli/susi/errs"
	"github.com/meysamhadeli/susi/providers/contracts"
	"github.com/meysamhadeli/susi/providers/models"
	"github.com/pterm/pterm"
)

// SusiConfig implements the ISusiProvider interface over HTTP.
type SusiConfig struct {
	BaseURL    string
	Version    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *pterm.Logger
}

const (
	defaultBaseURL = "https://susi-backend.onrender.com"
	defaultTimeout = 5 * time.Minute

	// maxErrorBody caps how much of a failed response is read for its message.
	maxErrorBody = 64 * 1024
)

// NewSusiProvider initializes a new provider for the remote service.
func NewSusiProvider(config *SusiConfig) contracts.ISusiProvider {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}

	version := config.Version
	if version == "" {
		version = "dev"
	}

	return &SusiConfig{
		BaseURL:    baseURL,
		Version:    version,
		Timeout:    timeout,
		HTTPClient: client,
		Logger:     logger,
	}
}

func (susiProvider *SusiConfig) Summarize(ctx context.Context, request models.SummarizeRequest) (*models.ProjectData, error) {
	var (
		body        io.Reader
		contentType string
	)

	if request.ZipPath != "" {
		buffer, formContentType, err := buildZipForm(request.ZipPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrAnalysisFailed, err)
		}
		body, contentType = buffer, formContentType
	} else {
		jsonData, err := json.Marshal(request)
		if err != nil {
			return nil, fmt.Errorf("%w: error marshalling request body: %w", errs.ErrAnalysisFailed, err)
		}
		body, contentType = bytes.NewReader(jsonData), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, susiProvider.BaseURL+"/summarize", body)
	if err != nil {
		return nil, fmt.Errorf("%w: error creating request: %w", errs.ErrAnalysisFailed, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := susiProvider.do(req, "summarize")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	var projectData models.ProjectData
	if err := json.NewDecoder(resp.Body).Decode(&projectData); err != nil {
		return nil, fmt.Errorf("%w: error decoding response: %w", errs.ErrAnalysisFailed, err)
	}

	return &projectData, nil
}

func (susiProvider *SusiConfig) Generate(ctx context.Context, aiSummary string) (*models.GenerateResponse, error) {
	jsonData, err := json.Marshal(models.GenerateRequest{AISummary: aiSummary})
	if err != nil {
		return nil, fmt.Errorf("%w: error marshalling request body: %w", errs.ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, susiProvider.BaseURL+"/generate", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: error creating request: %w", errs.ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := susiProvider.do(req, "generate")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	var generated models.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, fmt.Errorf("%w: error decoding response: %w", errs.ErrGenerationFailed, err)
	}

	return &generated, nil
}

func (susiProvider *SusiConfig) FetchArchive(ctx context.Context, downloadURL string, dst io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: error creating request: %w", errs.ErrDownloadFailed, err)
	}

	resp, err := susiProvider.do(req, "download")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	written, err := io.Copy(dst, resp.Body)
	if err != nil {
		return written, fmt.Errorf("%w: error reading archive: %w", errs.ErrDownloadFailed, err)
	}

	return written, nil
}

// do sends req and returns the response only for a 2xx status.
func (susiProvider *SusiConfig) do(req *http.Request, op string) (*http.Response, error) {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", "susi/"+susiProvider.Version)

	started := time.Now()
	resp, err := susiProvider.HTTPClient.Do(req)
	if err != nil {
		susiProvider.Logger.Debug("request failed", susiProvider.Logger.Args(
			"op", op, "method", req.Method, "url", req.URL.String(), "request_id", requestID, "error", err,
		))
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, fmt.Errorf("request canceled: %w", ctxErr)
		}
		return nil, fmt.Errorf("error sending request: %w", err)
	}

	susiProvider.Logger.Debug("request completed", susiProvider.Logger.Args(
		"op", op, "method", req.Method, "url", req.URL.String(), "request_id", requestID,
		"status", resp.StatusCode, "duration", time.Since(started).String(),
	))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()

		statusErr := &errs.StatusError{Op: op, StatusCode: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var apiError models.APIError
		if err := json.Unmarshal(body, &apiError); err == nil {
			statusErr.Message = apiError.Text()
		}
		return nil, statusErr
	}

	return resp, nil
}

func buildZipForm(zipPath string) (*bytes.Buffer, string, error) {
	file, err := os.Open(zipPath)
	if err != nil {
		return nil, "", fmt.Errorf("error opening archive: %w", err)
	}
	defer file.Close()

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	part, err := writer.CreateFormFile("zip", filepath.Base(zipPath))
	if err != nil {
		return nil, "", fmt.Errorf("error creating form field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("error reading archive: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("error closing form: %w", err)
	}

	return &buffer, writer.FormDataContentType(), nil
}
