package transcriber

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/net/http2"

	"github.com/yegors/scribe/internal/config"
	"github.com/yegors/scribe/pkg/logger"
)

// OpenAI transcribes recordings by uploading them to the OpenAI audio
// transcriptions API.
type OpenAI struct {
	config config.TranscriptionConfig
	client openai.Client
	logger *logger.Logger
}

// Ensure the backend implements the interface
var _ Transcriber = (*OpenAI)(nil)

// NewOpenAI creates a new OpenAI API transcriber. The API key comes from
// the config file or the OPENAI_API_KEY environment variable; a missing
// key is an error here so the pipeline fails before any audio is captured.
func NewOpenAI(cfg config.TranscriptionConfig, log *logger.Logger) (*OpenAI, error) {
	apiKey := cfg.OpenAI.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no OpenAI API key configured (set transcription.openai.api_key or OPENAI_API_KEY)")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(newHTTPClient(time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second)),
	)

	return &OpenAI{
		config: cfg,
		client: client,
		logger: log.Named("openai"),
	}, nil
}

// newHTTPClient builds the shared HTTP client used for API uploads
func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	_ = http2.ConfigureTransport(tr)
	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
}

// Name returns the backend identifier
func (o *OpenAI) Name() string {
	return "openai"
}

// Transcribe uploads the audio file and returns the transcript text
func (o *OpenAI) Transcribe(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	o.logger.Info("Uploading recording for transcription",
		logger.String("file", path),
		logger.String("model", o.config.OpenAI.Model),
		logger.String("language", o.config.Language),
	)

	params := openai.AudioTranscriptionNewParams{
		File:  f,
		Model: openai.AudioModel(o.config.OpenAI.Model),
	}
	if o.config.Language != "" {
		params.Language = openai.String(o.config.Language)
	}

	start := time.Now()
	resp, err := o.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe via OpenAI API: %w", err)
	}

	o.logger.Info("Transcription complete",
		logger.Duration("elapsed", time.Since(start)),
		logger.Int("output_bytes", len(resp.Text)),
	)

	return resp.Text, nil
}
