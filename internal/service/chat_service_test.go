package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-rag-be/internal/constant"
	"support-rag-be/internal/dto"
	"support-rag-be/internal/entity"
	"support-rag-be/internal/pkg/logger"
	"support-rag-be/internal/repository/memory"
	"support-rag-be/pkg/embedding"
	"support-rag-be/pkg/llm"
	"support-rag-be/pkg/rerank"
	"support-rag-be/pkg/retrieval"
	"support-rag-be/pkg/sparse"
)

type fakeLLM struct {
	answer string
	err    error
	calls  int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type queryProvider struct{}

func (queryProvider) Name() string { return "voyage" }

func (queryProvider) EmbedQuery(ctx context.Context, text, model string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (queryProvider) EmbedDocuments(ctx context.Context, texts []string, model string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (queryProvider) Dimension(model string) int { return 3 }

type noRerank struct{}

func (noRerank) Available() bool { return false }

func (noRerank) Rerank(ctx context.Context, query string, documents []string, topK int, model string) ([]rerank.Result, error) {
	return nil, errors.New("not configured")
}

func newChatFixture(t *testing.T, llmProvider llm.LLMProvider) (IChatService, *memory.MemoryVectorIndex) {
	t.Helper()
	idx := memory.NewMemoryVectorIndex()
	require.NoError(t, idx.EnsureCollection(context.Background(), "support-kb-voyage", 3))

	engine := retrieval.NewEngine(idx, embedding.NewRegistry(queryProvider{}), logger.NewNopLogger())
	gate := rerank.NewGate(noRerank{}, rerank.DefaultGateConfig(), logger.NewNopLogger())
	svc := NewChatService(memory.NewMemoryTenantConfigRepository(), engine, gate, llmProvider, nil, "support-kb", logger.NewNopLogger())
	return svc, idx
}

func seedChunk(t *testing.T, idx *memory.MemoryVectorIndex, text string) {
	t.Helper()
	c := &entity.Chunk{
		Id:           uuid.New(),
		Tenant:       entity.TenantFilter{BusinessId: "biz-1", WidgetId: "wid-1"},
		SourceItemId: "item-1",
		Title:        "Refund policy",
		Type:         "faq",
		Text:         text,
		TotalChunks:  1,
		Sparse:       sparse.Build(text),
		Dense:        []float32{1, 0, 0},
	}
	require.NoError(t, idx.Upsert(context.Background(), "support-kb-voyage", []*entity.Chunk{c}))
}

func chatReq(message string) *dto.ChatRequest {
	return &dto.ChatRequest{
		BusinessId: "biz-1",
		WidgetId:   "wid-1",
		SessionId:  "sess-1",
		Message:    message,
	}
}

func TestChatAnswersFromKnowledgeBase(t *testing.T) {
	model := &fakeLLM{answer: "You can return any item within thirty days of purchase and we will refund the full amount to your original payment method."}
	svc, idx := newChatFixture(t, model)
	seedChunk(t, idx, "Customers may return items within thirty days for a full refund.")

	res, err := svc.Chat(context.Background(), chatReq("What is your refund policy?"))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, model.answer, res.Response)
	assert.NotEmpty(t, res.Sources)
	assert.False(t, res.ShouldFallbackToHuman)
	assert.GreaterOrEqual(t, res.Confidence, 0.6)
	assert.Equal(t, "rag", res.Metadata.Mode)
	assert.False(t, res.Metadata.RerankUsed, "reranker backend is unavailable in this fixture")
}

func TestChatRequiresTenant(t *testing.T) {
	svc, _ := newChatFixture(t, &fakeLLM{answer: "hi"})
	_, err := svc.Chat(context.Background(), &dto.ChatRequest{BusinessId: "biz-1", Message: "hello"})
	assert.ErrorIs(t, err, entity.ErrMissingTenantFilter)
}

func TestChatGreetingSkipsRetrieval(t *testing.T) {
	model := &fakeLLM{answer: "Hello! How can I help you today?"}
	svc, _ := newChatFixture(t, model)

	res, err := svc.Chat(context.Background(), chatReq("hello"))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 0.95, res.Confidence)
	assert.Empty(t, res.Sources)
	assert.Equal(t, "conversational_direct", res.Metadata.Mode)
	assert.Equal(t, 1, model.calls)
}

func TestChatUncertainAnswerTriggersSmartFallback(t *testing.T) {
	model := &fakeLLM{answer: "I'm not sure about that from my current knowledge base."}
	svc, idx := newChatFixture(t, model)
	seedChunk(t, idx, "Opening hours are nine to five on weekdays.")

	res, err := svc.Chat(context.Background(), chatReq("Do you ship to Antarctica?"))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, constant.SmartFallbackMessage, res.Response)
	assert.Equal(t, 0.3, res.Confidence)
	assert.True(t, res.ShouldFallbackToHuman)
}

func TestChatLLMFailureFallsBackToHuman(t *testing.T) {
	model := &fakeLLM{err: errors.New("model overloaded")}
	svc, idx := newChatFixture(t, model)
	seedChunk(t, idx, "Some knowledge base content about billing.")

	res, err := svc.Chat(context.Background(), chatReq("How do I update my billing address?"))
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, constant.GenericErrorMessage, res.Response)
	assert.Zero(t, res.Confidence)
	assert.True(t, res.ShouldFallbackToHuman)
}

func TestChatHedgedAnswerDropsConfidence(t *testing.T) {
	model := &fakeLLM{answer: "Our docs mention plans but i don't have access to specific pricing tables, sorry."}
	svc, idx := newChatFixture(t, model)
	seedChunk(t, idx, "We offer basic and premium subscription plans.")

	res, err := svc.Chat(context.Background(), chatReq("Tell me about pricing for the premium plan"))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Less(t, res.Confidence, 0.6)
	assert.True(t, res.ShouldFallbackToHuman)
	assert.Contains(t, strings.Join(res.Metadata.ReasonCodes, ","), entity.ReasonHedgingPhrase)
}

func TestPreviewKeepsValidUTF8(t *testing.T) {
	text := strings.Repeat("é", 30) // two bytes per rune
	got := preview(text, 33)        // lands mid-rune

	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "short", preview("short", 10))
}

type recordingRerank struct {
	lastQuery string
}

func (r *recordingRerank) Available() bool { return true }

func (r *recordingRerank) Rerank(ctx context.Context, query string, documents []string, topK int, model string) ([]rerank.Result, error) {
	r.lastQuery = query
	out := make([]rerank.Result, 0, topK)
	for i := 0; i < topK && i < len(documents); i++ {
		out = append(out, rerank.Result{Index: i, RelevanceScore: 0.9 - float64(i)*0.1})
	}
	return out, nil
}

func TestChatReranksWithRawMessage(t *testing.T) {
	model := &fakeLLM{answer: "Returns are accepted within thirty days and refunds go back to the original payment method."}
	idx := memory.NewMemoryVectorIndex()
	require.NoError(t, idx.EnsureCollection(context.Background(), "support-kb-voyage", 3))

	// Off-axis vectors keep the top raw score under the skip threshold
	// so the gate actually calls the reranker.
	for i, text := range []string{"Shipping takes five days.", "Orders arrive in one week."} {
		c := &entity.Chunk{
			Id:           uuid.New(),
			Tenant:       entity.TenantFilter{BusinessId: "biz-1", WidgetId: "wid-1"},
			SourceItemId: "item-1",
			Title:        "Shipping",
			Type:         "faq",
			Text:         text,
			ChunkIndex:   i,
			TotalChunks:  2,
			Sparse:       sparse.Build(text),
			Dense:        []float32{1, 2, 0},
		}
		require.NoError(t, idx.Upsert(context.Background(), "support-kb-voyage", []*entity.Chunk{c}))
	}

	rr := &recordingRerank{}
	engine := retrieval.NewEngine(idx, embedding.NewRegistry(queryProvider{}), logger.NewNopLogger())
	gate := rerank.NewGate(rr, rerank.DefaultGateConfig(), logger.NewNopLogger())
	svc := NewChatService(memory.NewMemoryTenantConfigRepository(), engine, gate, model, nil, "support-kb", logger.NewNopLogger())

	res, err := svc.Chat(context.Background(), chatReq("What is your refund policy?"))
	require.NoError(t, err)

	assert.True(t, res.Metadata.RerankUsed)
	assert.Equal(t, "What is your refund policy?", rr.lastQuery,
		"the reranker sees the customer's wording, not the preprocessed query")
}

func TestChatDisabledTenant(t *testing.T) {
	model := &fakeLLM{answer: "should never be called"}
	idx := memory.NewMemoryVectorIndex()
	engine := retrieval.NewEngine(idx, embedding.NewRegistry(queryProvider{}), logger.NewNopLogger())
	gate := rerank.NewGate(noRerank{}, rerank.DefaultGateConfig(), logger.NewNopLogger())
	configs := memory.NewMemoryTenantConfigRepository()

	cfg := entity.DefaultTenantAIConfig(entity.TenantFilter{BusinessId: "biz-1", WidgetId: "wid-1"})
	cfg.Enabled = false
	require.NoError(t, configs.Save(context.Background(), cfg))

	svc := NewChatService(configs, engine, gate, model, nil, "support-kb", logger.NewNopLogger())
	res, err := svc.Chat(context.Background(), chatReq("What is your refund policy?"))
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, constant.AiDisabledMessage, res.Response)
	assert.True(t, res.ShouldFallbackToHuman)
	assert.Zero(t, model.calls)
}
