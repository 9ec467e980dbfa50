package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

const openAIDefaultBase = "https://api.openai.com/v1"

// testModePixel is a 1x1 PNG returned when the API key is "test", so
// integrations can exercise the image path without an OpenAI account.
const testModePixel = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNk+A8AAQUBAScY42YAAAAASUVORK5CYII="

// DallEImage generates images through the OpenAI images API. The key
// comes from env_vars or the OPENAI_API_KEY environment variable.
type DallEImage struct {
	httpClient *http.Client
}

func NewDallEImage() *DallEImage {
	return &DallEImage{
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (*DallEImage) Name() string { return "generate_dalle_image" }

func (*DallEImage) Description() string {
	return "Generates images using OpenAI's Dall-E model. " +
		"This tool is used to give the ability to generate images using the DALL-E model. " +
		"It is a transformer-based model that generates images from textual descriptions. " +
		"This tool allows to generate images based on the text input provided by the user."
}

func (*DallEImage) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "image_description",
			Type:        tool.TypeString,
			Required:    true,
			MinLen:      10,
			MaxLen:      1000,
			Description: "Textual description of the image to generate",
		},
		tool.Field{
			Name:        "model",
			Type:        tool.TypeString,
			Default:     "dall-e-3",
			Description: "The OpenAI DALL-E model to use",
		},
		tool.Field{
			Name:        "size",
			Type:        tool.TypeString,
			Default:     "1024x1024",
			Pattern:     `^\d+x\d+$`,
			Description: "Size of the generated image",
		},
		tool.Field{
			Name:        "quality",
			Type:        tool.TypeString,
			Default:     "standard",
			Pattern:     `^(standard|high)$`,
			Description: "Quality of the generated image",
		},
		tool.Field{
			Name:        "n",
			Type:        tool.TypeInteger,
			Default:     1,
			Min:         tool.FloatPtr(1),
			Max:         tool.FloatPtr(10),
			Description: "Number of images to generate",
		},
	)
}

type imageGenerationRequest struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

type imageGenerationResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

func (t *DallEImage) Run(ctx context.Context, args tool.Args) []tool.Content {
	env := args.Env("OPENAI_")
	apiKey := env["OPENAI_API_KEY"]
	if apiKey == "" {
		return tool.Textf("OpenAI API key is required. Please provide it in env_vars or set OPENAI_API_KEY environment variable.")
	}

	description := args.String("image_description")
	if description == "" {
		return tool.Textf("Missing required argument: image_description")
	}

	if apiKey == "test" {
		return []tool.Content{tool.ImageContent{
			Data:     testModePixel,
			MIMEType: "image/jpeg",
		}}
	}

	baseURL := env["OPENAI_BASE_URL"]
	if baseURL == "" {
		baseURL = openAIDefaultBase
	}

	payload, err := json.Marshal(imageGenerationRequest{
		Prompt:         description,
		Model:          args.String("model"),
		N:              args.Int("n"),
		Size:           args.String("size"),
		Quality:        args.String("quality"),
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return tool.Errorf(500, "Error generating image: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return tool.Errorf(500, "Error generating image: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return tool.Errorf(500, "Error generating image: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return tool.Errorf(resp.StatusCode, "Error generating image: %s", string(body))
	}

	var parsed imageGenerationResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return tool.Errorf(500, "Error generating image: %v", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].B64JSON == "" {
		return tool.Textf("No images generated.")
	}

	return []tool.Content{tool.ImageContent{
		Data:     parsed.Data[0].B64JSON,
		MIMEType: "image/jpeg",
	}}
}
