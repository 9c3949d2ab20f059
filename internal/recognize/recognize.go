// Package recognize extracts lyrics text from a recorded clip via a remote
// speech-to-text service. It is a thin client: one request per clip, no
// streaming, no retries.
package recognize

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/sunghyunjo/songwhisper/config"
	"github.com/sunghyunjo/songwhisper/internal/capture"
)

// Result is the transcription of one clip. Text is empty when the service
// could not make out any words; that is a normal outcome, not an error.
type Result struct {
	Text       string
	Confidence float64
}

// Recognizer turns a clip into lyrics text.
type Recognizer interface {
	Transcribe(ctx context.Context, clip capture.Clip) (Result, error)
}

// Google calls the Google Speech API v2 endpoint with raw 16-bit PCM audio.
type Google struct {
	endpoint string
	key      string
	language string
	client   *http.Client
	logger   *log.Logger
}

// NewGoogle builds a client from configuration.
func NewGoogle(cfg config.RecognizeConfig) *Google {
	return &Google{
		endpoint: cfg.Endpoint,
		key:      cfg.APIKey,
		language: cfg.Language,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   log.New(os.Stdout, "[recognize] ", log.LstdFlags),
	}
}

// Transcribe posts the clip and returns the top hypothesis. Transport and
// HTTP failures are errors; unintelligible audio is an empty Result.
func (g *Google) Transcribe(ctx context.Context, clip capture.Clip) (Result, error) {
	if g.key == "" {
		return Result{}, errors.New("recognize: api key not configured")
	}
	if len(clip.Samples) == 0 {
		return Result{}, errors.New("recognize: empty clip")
	}

	q := url.Values{}
	q.Set("client", "chromium")
	q.Set("lang", g.language)
	q.Set("key", g.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.endpoint+"?"+q.Encode(), bytes.NewReader(pcmBytes(clip.Samples)))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", fmt.Sprintf("audio/l16; rate=%d; channels=1", clip.SampleRate))

	resp, err := g.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("recognize request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("recognize request: unexpected status %d", resp.StatusCode)
	}

	res, err := parseResponse(resp.Body)
	if err != nil {
		return Result{}, err
	}
	if res.Text == "" {
		g.logger.Printf("no speech recognized in %s clip", clip.Duration())
	}
	return res, nil
}

func pcmBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

// The service replies with one JSON object per line; the first line is
// usually an empty result set and the real hypothesis follows.
type apiResponse struct {
	Result []struct {
		Alternative []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternative"`
		Final bool `json:"final"`
	} `json:"result"`
}

func parseResponse(r io.Reader) (Result, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var body apiResponse
		if err := json.Unmarshal([]byte(line), &body); err != nil {
			return Result{}, fmt.Errorf("recognize response: %w", err)
		}
		for _, res := range body.Result {
			if len(res.Alternative) == 0 {
				continue
			}
			top := res.Alternative[0]
			return Result{Text: top.Transcript, Confidence: top.Confidence}, nil
		}
	}
	if err := sc.Err(); err != nil {
		return Result{}, fmt.Errorf("recognize response: %w", err)
	}
	return Result{}, nil
}
