package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driven"
)

// Wire formats. Field names follow the backend contract exactly, including
// the Portuguese payload keys, so the client stays compatible with the
// deployed API.

type generateRequest struct {
	Prompt       string `json:"prompt"`
	Context      string `json:"context"`
	DocumentType string `json:"document_type"`
}

type generateResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Model    string `json:"model,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ragChatRequest struct {
	Prompt       string `json:"prompt"`
	UserID       int    `json:"user_id"`
	DocumentType string `json:"document_type"`
}

type ragChatResponse struct {
	Response      string `json:"response"`
	HasContext    bool   `json:"has_context"`
	ContextLength int    `json:"context_length"`
	Error         string `json:"error,omitempty"`
}

type clientsResponse struct {
	Success  bool         `json:"success"`
	Clientes []wireClient `json:"clientes"`
	Total    int          `json:"total"`
	Error    string       `json:"error,omitempty"`
}

type wireClient struct {
	ID              int64   `json:"id"`
	NomeCompleto    string  `json:"nome_completo"`
	Email           string  `json:"email"`
	PatrimonioTotal float64 `json:"patrimonio_total"`
}

type documentsResponse struct {
	Success    bool           `json:"success"`
	Documentos []wireDocument `json:"documentos"`
	Error      string         `json:"error,omitempty"`
}

type wireDocument struct {
	ID                  int64  `json:"id"`
	Titulo              string `json:"titulo"`
	TipoArquivo         string `json:"tipo_arquivo"`
	TamanhoArquivo      int64  `json:"tamanho_arquivo"`
	DataUpload          string `json:"data_upload"`
	StatusProcessamento string `json:"status_processamento"`
	Indexado            bool   `json:"indexado"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type indexRequest struct {
	Rebuild bool `json:"rebuild"`
}

type statsResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	IndexStats struct {
		TotalDocuments           int `json:"total_documents"`
		VectorizerVocabularySize int `json:"vectorizer_vocabulary_size"`
	} `json:"index_stats"`
	DatabaseStats struct {
		DocumentosProcessados int `json:"documentos_processados"`
		FontesProcessadas     int `json:"fontes_processadas"`
	} `json:"database_stats"`
}

type searchRequest struct {
	Query          string  `json:"query"`
	TopK           int     `json:"top_k"`
	Threshold      float64 `json:"threshold"`
	IncludeContext bool    `json:"include_context"`
}

type searchResponse struct {
	Success bool         `json:"success"`
	Results []wireResult `json:"results"`
	Error   string       `json:"error,omitempty"`
}

type wireResult struct {
	Titulo       string  `json:"titulo"`
	Fonte        string  `json:"fonte"`
	Score        float64 `json:"score"`
	Rank         int     `json:"rank"`
	Tipo         string  `json:"tipo"`
	TextoPreview string  `json:"texto_preview,omitempty"`
}

type healthResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Health  struct {
		ClaudeService    bool `json:"claude_service"`
		APIKeyConfigured bool `json:"api_key_configured"`
		EmbeddingService bool `json:"embedding_service"`
		SearchIndex      bool `json:"search_index"`
		OverallStatus    bool `json:"overall_status"`
	} `json:"health"`
}

// GenerateDocument runs a plain chat generation.
func (g *Gateway) GenerateDocument(
	ctx context.Context,
	prompt, docContext, documentType string,
) (*driven.GenerateResult, error) {
	body, err := g.do(ctx, request{
		method:  http.MethodPost,
		path:    "/api/generate-document",
		body:    generateRequest{Prompt: prompt, Context: docContext, DocumentType: documentType},
		timeout: g.chatTimeout,
	})
	if err != nil {
		return nil, err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !resp.Success {
		return nil, appError(resp.Error)
	}
	return &driven.GenerateResult{Response: resp.Response, Model: resp.Model}, nil
}

// ChatWithRAG runs a context-augmented chat turn.
func (g *Gateway) ChatWithRAG(
	ctx context.Context,
	prompt string,
	userID int,
	documentType string,
) (*driven.RAGChatResult, error) {
	body, err := g.do(ctx, request{
		method:  http.MethodPost,
		path:    "/api/rag/chat-with-rag",
		body:    ragChatRequest{Prompt: prompt, UserID: userID, DocumentType: documentType},
		timeout: g.chatTimeout,
	})
	if err != nil {
		return nil, err
	}

	var resp ragChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	// The RAG endpoint carries no success flag; a 2xx with an error field
	// is still an application failure.
	if resp.Error != "" {
		return nil, appError(resp.Error)
	}
	return &driven.RAGChatResult{
		Response:      resp.Response,
		HasContext:    resp.HasContext,
		ContextLength: resp.ContextLength,
	}, nil
}

// ListClients fetches the client roster and its total count.
func (g *Gateway) ListClients(ctx context.Context, userID, perPage int) ([]domain.Client, int, error) {
	query := url.Values{}
	query.Set("user_id", strconv.Itoa(userID))
	query.Set("per_page", strconv.Itoa(perPage))

	body, err := g.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/clientes",
		query:  query,
	})
	if err != nil {
		return nil, 0, err
	}

	var resp clientsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("decode response: %w", err)
	}
	if !resp.Success {
		return nil, 0, appError(resp.Error)
	}

	clients := make([]domain.Client, 0, len(resp.Clientes))
	for _, c := range resp.Clientes {
		clients = append(clients, domain.Client{
			ID:          c.ID,
			FullName:    c.NomeCompleto,
			Email:       c.Email,
			TotalAssets: c.PatrimonioTotal,
		})
	}
	return clients, resp.Total, nil
}

// ListDocuments fetches the canonical uploaded-document list.
func (g *Gateway) ListDocuments(ctx context.Context) ([]domain.UploadedDocument, error) {
	body, err := g.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/mcp/documents",
	})
	if err != nil {
		return nil, err
	}

	var resp documentsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !resp.Success {
		return nil, appError(resp.Error)
	}

	docs := make([]domain.UploadedDocument, 0, len(resp.Documentos))
	for _, d := range resp.Documentos {
		docs = append(docs, domain.UploadedDocument{
			ID:         d.ID,
			Title:      d.Titulo,
			FileType:   d.TipoArquivo,
			SizeBytes:  d.TamanhoArquivo,
			UploadedAt: parseUploadTime(d.DataUpload),
			Status:     domain.ParseProcessingStatus(d.StatusProcessamento),
			Indexed:    d.Indexado,
		})
	}
	return docs, nil
}

// UploadDocument uploads one file as multipart form data.
func (g *Gateway) UploadDocument(
	ctx context.Context,
	file domain.UploadFile,
	userID int,
	category string,
) error {
	body, err := g.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/mcp/upload",
		file:   &file,
		form: map[string]string{
			"user_id":   strconv.Itoa(userID),
			"categoria": category,
		},
	})
	if err != nil {
		return err
	}

	var resp successResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !resp.Success {
		return appError(resp.Error)
	}
	return nil
}

// DeleteDocument removes a document by ID.
func (g *Gateway) DeleteDocument(ctx context.Context, id int64) error {
	body, err := g.do(ctx, request{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/api/mcp/documents/%d", id),
	})
	if err != nil {
		return err
	}

	var resp successResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !resp.Success {
		return appError(resp.Error)
	}
	return nil
}

// TriggerIndexing asks the backend to (re)index uploaded documents.
func (g *Gateway) TriggerIndexing(ctx context.Context, rebuild bool) error {
	body, err := g.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/search/index-documents",
		body:   indexRequest{Rebuild: rebuild},
	})
	if err != nil {
		return err
	}

	var resp successResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !resp.Success {
		return appError(resp.Error)
	}
	return nil
}

// IndexStats fetches search index and database statistics.
func (g *Gateway) IndexStats(ctx context.Context) (*domain.IndexStats, error) {
	body, err := g.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/search/index-stats",
	})
	if err != nil {
		return nil, err
	}

	var resp statsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !resp.Success {
		return nil, appError(resp.Error)
	}
	return &domain.IndexStats{
		IndexedDocuments:   resp.IndexStats.TotalDocuments,
		VocabularySize:     resp.IndexStats.VectorizerVocabularySize,
		ProcessedDocuments: resp.DatabaseStats.DocumentosProcessados,
		ProcessedSources:   resp.DatabaseStats.FontesProcessadas,
	}, nil
}

// SemanticSearch runs a ranked similarity query.
func (g *Gateway) SemanticSearch(
	ctx context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	body, err := g.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/search/search",
		body: searchRequest{
			Query:          query,
			TopK:           opts.TopK,
			Threshold:      opts.Threshold,
			IncludeContext: opts.IncludeContext,
		},
	})
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !resp.Success {
		return nil, appError(resp.Error)
	}

	results := make([]domain.SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, domain.SearchResult{
			Title:   r.Titulo,
			Source:  r.Fonte,
			Score:   r.Score,
			Rank:    r.Rank,
			Type:    r.Tipo,
			Preview: r.TextoPreview,
		})
	}
	return results, nil
}

// RAGHealth fetches the per-subsystem readiness probes.
func (g *Gateway) RAGHealth(ctx context.Context) (domain.SubsystemHealth, error) {
	body, err := g.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/rag/rag-health",
	})
	if err != nil {
		return domain.SubsystemHealth{}, err
	}

	var resp healthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.SubsystemHealth{}, fmt.Errorf("decode response: %w", err)
	}
	if !resp.Success {
		return domain.SubsystemHealth{}, appError(resp.Error)
	}
	return domain.SubsystemHealth{
		ChatInference:    resp.Health.ClaudeService,
		KeyConfigured:    resp.Health.APIKeyConfigured,
		EmbeddingService: resp.Health.EmbeddingService,
		SearchIndex:      resp.Health.SearchIndex,
	}, nil
}

// parseUploadTime parses the backend's upload timestamp. An unparseable
// value yields the zero time rather than failing the whole listing.
func parseUploadTime(wire string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, wire); err == nil {
			return t
		}
	}
	return time.Time{}
}
