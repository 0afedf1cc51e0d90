package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBytes límite de lectura del cuerpo de respuesta.
const maxResponseBytes = 64 * 1024

// systemPrompt define el rol del modelo. El formato de salida lo fija cada prompt de la aplicación.
const systemPrompt = `You help a small Indian grocery (kirana) shop. Shopkeepers dictate orders in English, Hindi or Hinglish.
Answer ONLY with the JSON requested by the user message. No prose, no markdown.`

// newHTTPClient timeout de red; el caso de uso impone además su propio context.WithTimeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 20 * time.Second}
}

// postJSON serializa payload, hace POST y devuelve el status y el cuerpo (hasta maxResponseBytes).
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("AI: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return 0, nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}
	return resp.StatusCode, raw, nil
}
