package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// QwenProvider generates insight text through Alibaba's DashScope
// text-generation endpoint.
type QwenProvider struct{}

var _ Provider = (*QwenProvider)(nil)

const dashScopeEndpoint = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"

type qwenRequest struct {
	Model      string         `json:"model"`
	Input      qwenInput      `json:"input"`
	Parameters qwenParameters `json:"parameters"`
}

type qwenInput struct {
	Messages []qwenMessage `json:"messages"`
}

type qwenMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type qwenParameters struct {
	ResultFormat string `json:"result_format"`
}

type qwenResponse struct {
	Output struct {
		Choices []struct {
			Message qwenMessage `json:"message"`
		} `json:"choices"`
		// Some DashScope models return text directly in output.
		Text string `json:"text"`
	} `json:"output"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (p *QwenProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv("DASHSCOPE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("QWEN_API_KEY")
	}
	if val, ok := options["api_key"].(string); ok && val != "" {
		apiKey = val
	}
	if apiKey == "" {
		return "", fmt.Errorf("QWEN_API_KEY_MISSING: Please set DASHSCOPE_API_KEY or QWEN_API_KEY")
	}

	model := "qwen-max"
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	reqBody := qwenRequest{
		Model: model,
		Input: qwenInput{
			Messages: []qwenMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: prompt},
			},
		},
		Parameters: qwenParameters{ResultFormat: "message"},
	}

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("QWEN_MARSHAL_ERROR: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", dashScopeEndpoint, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("QWEN_REQ_CREATE_ERROR: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("QWEN_API_CALL_ERROR: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("QWEN_READ_BODY_ERROR: %v", err)
	}
	if res.StatusCode != 200 {
		return "", fmt.Errorf("QWEN_API_ERROR: status=%d body=%s", res.StatusCode, string(body))
	}

	var response qwenResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("QWEN_UNMARSHAL_ERROR: %v", err)
	}
	if response.Code != "" {
		return "", fmt.Errorf("QWEN_API_ERROR: %s - %s", response.Code, response.Message)
	}

	if len(response.Output.Choices) > 0 {
		return response.Output.Choices[0].Message.Content, nil
	}
	if response.Output.Text != "" {
		return response.Output.Text, nil
	}
	return "", fmt.Errorf("QWEN_NO_CHOICES: %s", string(body))
}

func (p *QwenProvider) AdaptInstructions(raw string) string {
	return raw
}
