package adk

import (
	"context"
	"iter"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"voyager/internal/adapters/config"
	"voyager/pkg/errors"
	"voyager/pkg/logger"
)

// GeminiModel adapts the Gemini client to ADK's model.LLM interface.
type GeminiModel struct {
	client    *genai.Client
	modelName string
	log       *logger.Logger
}

// NewGeminiClient builds a genai client from config, selecting the Vertex AI
// backend when GOOGLE_GENAI_USE_VERTEXAI is set.
func NewGeminiClient(ctx context.Context, cfg config.GenAIConfig) (*genai.Client, error) {
	cc := &genai.ClientConfig{}
	if cfg.UseVertexAI {
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
	} else {
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = cfg.APIKey
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}
	return client, nil
}

// NewGeminiModel wraps a genai client as an ADK model.
func NewGeminiModel(client *genai.Client, modelName string) *GeminiModel {
	return &GeminiModel{
		client:    client,
		modelName: modelName,
		log:       logger.Get().With("component", "gemini_model", "model", modelName),
	}
}

// Name returns the model name.
func (m *GeminiModel) Name() string {
	return m.modelName
}

// GenerateContent implements the ADK model.LLM interface.
func (m *GeminiModel) GenerateContent(
	ctx context.Context,
	req *model.LLMRequest,
	stream bool,
) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		// The request config carries the system instruction and tool
		// declarations assembled by the flow; it must reach the backend.
		cfg := req.Config
		if cfg == nil {
			cfg = &genai.GenerateContentConfig{}
		}

		if stream {
			var (
				text strings.Builder
				last *model.LLMResponse
			)
			for resp, err := range m.client.Models.GenerateContentStream(ctx, m.modelName, req.Contents, cfg) {
				if err != nil {
					yield(nil, errors.Wrap(err, "gemini stream failed"))
					return
				}
				adkResp := m.toADKResponse(resp)
				last = adkResp
				if adkResp.Content != nil {
					for _, part := range adkResp.Content.Parts {
						text.WriteString(part.Text)
					}
				}
				chunk := *adkResp
				chunk.Partial = true
				if !yield(&chunk, nil) {
					return
				}
			}

			// Close the turn with a non-partial response carrying the
			// aggregated text so downstream flows see a final event.
			yield(m.finalResponse(last, text.String()), nil)
			return
		}

		resp, err := m.client.Models.GenerateContent(ctx, m.modelName, req.Contents, cfg)
		if err != nil {
			m.log.Errorw("Gemini call failed", "error", err)
			yield(nil, errors.Wrap(err, "gemini call failed"))
			return
		}

		yield(m.toADKResponse(resp), nil)
	}
}

// finalResponse assembles the terminal event of a streamed turn. When the
// stream produced text it is merged into a single content block; otherwise
// the last chunk's content (tool calls arrive whole) is carried as-is.
func (m *GeminiModel) finalResponse(last *model.LLMResponse, text string) *model.LLMResponse {
	final := &model.LLMResponse{FinishReason: genai.FinishReasonStop}
	if last != nil {
		final.Content = last.Content
		final.FinishReason = last.FinishReason
		final.UsageMetadata = last.UsageMetadata
		final.ErrorMessage = last.ErrorMessage
	}
	if text != "" {
		final.Content = genai.NewContentFromText(text, genai.RoleModel)
	}
	if last == nil {
		final.FinishReason = genai.FinishReasonOther
		final.ErrorMessage = "empty stream from model"
	}
	return final
}

func (m *GeminiModel) toADKResponse(resp *genai.GenerateContentResponse) *model.LLMResponse {
	adkResp := &model.LLMResponse{}

	if len(resp.Candidates) == 0 {
		adkResp.FinishReason = genai.FinishReasonOther
		adkResp.ErrorMessage = "no candidates in response"
		return adkResp
	}

	candidate := resp.Candidates[0]
	adkResp.Content = candidate.Content
	adkResp.FinishReason = candidate.FinishReason
	adkResp.UsageMetadata = resp.UsageMetadata

	return adkResp
}
