package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/Kirana-api/internal/application/ports"
)

var _ ports.LLMService = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// GeminiService adaptador de LLMService sobre la API REST de Google Gemini.
// responseMimeType=application/json obliga al modelo a devolver JSON puro.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador (ej. model "gemini-2.0-flash").
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{apiKey: apiKey, model: model, baseURL: geminiBaseURL, httpClient: newHTTPClient()}
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete devuelve el texto del primer candidato.
func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}

	status, raw, err := postJSON(ctx, s.httpClient, fmt.Sprintf(s.baseURL, s.model, s.apiKey), nil, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig:  genConfig{ResponseMIMEType: "application/json", Temperature: 0.1, MaxOutputTokens: 512},
	})
	if err != nil {
		return "", err
	}

	var out geminiResponse
	jsonErr := json.Unmarshal(raw, &out)
	if status != http.StatusOK {
		if jsonErr == nil && out.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", out.Error.Code, out.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", status)
	}
	if jsonErr != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Gemini: %w", jsonErr)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}
