// Package imagen calls a Vertex-Imagen-style predict endpoint.
package imagen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/moodgarden/moodgarden/internal/config"
)

// Generator is a client for the image generation API. One instance is built at
// process start and shared for the process lifetime.
type Generator struct {
	client *resty.Client
	path   string
	token  string
}

// New builds the generator from configuration.
// No request timeout is set: a hung generation blocks only its own background task.
func New(cfg *config.Config) *Generator {
	c := resty.New().
		SetBaseURL(cfg.ImagenEndpoint).
		SetHeader("Content-Type", "application/json")

	path := fmt.Sprintf("/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
		cfg.ImagenProject, cfg.ImagenLocation, cfg.ImagenModel)

	return &Generator{client: c, path: path, token: cfg.ImagenAccessToken}
}

type predictRequest struct {
	Instances  []instance `json:"instances"`
	Parameters parameters `json:"parameters"`
}

type instance struct {
	Prompt string `json:"prompt"`
}

type parameters struct {
	SampleCount int `json:"sampleCount"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

// Generate requests one image for the prompt and returns the decoded bytes.
func (g *Generator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	reqBody := predictRequest{
		Instances:  []instance{{Prompt: prompt}},
		Parameters: parameters{SampleCount: 1},
	}

	req := g.client.R().
		SetContext(ctx).
		SetBody(&reqBody)
	if g.token != "" {
		req.SetAuthToken(g.token)
	}

	resp, err := req.Post(g.path)
	if err != nil {
		return nil, fmt.Errorf("imagen request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("imagen status %d: %s", resp.StatusCode(), resp.String())
	}

	var pr predictResponse
	if err := json.Unmarshal(resp.Body(), &pr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(pr.Predictions) == 0 || pr.Predictions[0].BytesBase64Encoded == "" {
		return nil, fmt.Errorf("imagen returned no image")
	}

	data, err := base64.StdEncoding.DecodeString(pr.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("decode image bytes: %w", err)
	}
	return data, nil
}
