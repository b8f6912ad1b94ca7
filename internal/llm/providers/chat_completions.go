package providers

// Request and response shapes of the OpenAI-compatible chat completions API,
// spoken by the Gemini compatibility endpoint and the Hugging Face router.

type ChatCompletionRequest struct {
	MaxTokens   int                     `json:"max_tokens"`
	Messages    []ChatCompletionMessage `json:"messages"`
	Model       string                  `json:"model"`
	Temperature float64                 `json:"temperature"`
}

type ChatCompletionMessage struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

type ChatCompletionResponse struct {
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   CompletionUsage        `json:"usage"`
}

type ChatCompletionChoice struct {
	Message ChatCompletionReply `json:"message"`
}

// ChatCompletionReply is an assistant message; Content is nil when the field is absent or null
type ChatCompletionReply struct {
	Content *string `json:"content"`
	Role    string  `json:"role"`
}

type CompletionUsage struct {
	CompletionTokens int `json:"completion_tokens"`
	PromptTokens     int `json:"prompt_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// chatMessages builds the message list, prepending the system prompt when there is one
func chatMessages(systemPrompt, userPrompt string) []ChatCompletionMessage {
	var messages []ChatCompletionMessage
	if systemPrompt != "" {
		messages = append(messages, ChatCompletionMessage{Role: "system", Content: systemPrompt})
	}
	return append(messages, ChatCompletionMessage{Role: "user", Content: userPrompt})
}
