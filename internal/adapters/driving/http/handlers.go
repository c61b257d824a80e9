package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/swaggo/swag"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// RootResponse is the service banner served at the API root
// @Description Service banner with pointers to the docs and health endpoints
type RootResponse struct {
	Message string `json:"message" example:"Site Q&A API"`
	Docs    string `json:"docs" example:"/openapi.json"`
	Health  string `json:"health" example:"/health"`
}

// HealthResponse reports index reachability and fill level
// @Description Health check response
type HealthResponse struct {
	Status           string `json:"status" example:"healthy" enums:"healthy,no_data"`
	VectorStoreCount int    `json:"vector_store_count" example:"1423"`
}

// StatsResponse summarises the knowledge base
// @Description Knowledge base statistics
type StatsResponse struct {
	TotalDocuments  int            `json:"total_documents" example:"1423"`
	CollectionName  string         `json:"collection_name" example:"website_docs"`
	EmbeddingModel  string         `json:"embedding_model" example:"text-embedding-ada-002"`
	LLMModel        string         `json:"llm_model" example:"gpt-3.5-turbo"`
	IsCrawling      bool           `json:"is_crawling" example:"false"`
	LastCrawlResult *CrawlResponse `json:"last_crawl_result"`
}

// CrawlRequest starts an ingestion run. Omitted fields fall back to their
// documented defaults (50 pages, 1.0 second delay).
// @Description Crawl request parameters
type CrawlRequest struct {
	BaseURL    string   `json:"base_url" example:"https://docs.python.org/3/"`
	MaxPages   *int     `json:"max_pages,omitempty" example:"50" minimum:"1" maximum:"100"`
	CrawlDelay *float64 `json:"crawl_delay,omitempty" example:"1.0" minimum:"0.5" maximum:"5.0"`
}

// CrawlResponse reports the outcome of an ingestion run
// @Description Crawl result with pipeline counts and elapsed seconds
type CrawlResponse struct {
	Success             bool    `json:"success" example:"true"`
	Message             string  `json:"message" example:"Successfully crawled 50 pages, created 412 chunks and stored 412 embeddings"`
	PagesCrawled        int     `json:"pages_crawled" example:"50"`
	ChunksCreated       int     `json:"chunks_created" example:"412"`
	EmbeddingsGenerated int     `json:"embeddings_generated" example:"412"`
	TotalTime           float64 `json:"total_time" example:"73.4"`
}

// CrawlStatusResponse is a snapshot of the ingestion state
// @Description Crawl status with the last completed result, if any
type CrawlStatusResponse struct {
	IsCrawling    bool           `json:"is_crawling" example:"false"`
	StartedAt     *time.Time     `json:"started_at,omitempty"`
	LastCrawlTime *time.Time     `json:"last_crawl_time"`
	LastResult    *CrawlResponse `json:"last_result"`
}

// AskRequest is a question against the indexed site
// @Description Question with optional retrieval depth
type AskRequest struct {
	Question string `json:"question" example:"How do I install Python?"`
	TopK     *int   `json:"top_k,omitempty" example:"5" minimum:"1" maximum:"10"`
}

// AnswerResponse is the generated answer with its cited sources
// @Description Generated answer with source attribution
type AnswerResponse struct {
	Question        string          `json:"question" example:"How do I install Python?"`
	Answer          string          `json:"answer" example:"According to Source 1, download the installer from python.org..."`
	Sources         []domain.Source `json:"sources"`
	Success         bool            `json:"success" example:"true"`
	NumContextsUsed int             `json:"num_contexts_used" example:"5"`
}

// crawlResponseFromResult maps a pipeline result to its wire shape. Elapsed
// time goes out as fractional seconds.
func crawlResponseFromResult(res *domain.IngestResult) *CrawlResponse {
	if res == nil {
		return nil
	}
	return &CrawlResponse{
		Success:             res.Success,
		Message:             res.Message,
		PagesCrawled:        res.PagesCrawled,
		ChunksCreated:       res.ChunksCreated,
		EmbeddingsGenerated: res.EmbeddingsStored,
		TotalTime:           res.Took.Seconds(),
	}
}

// handleRoot godoc
// @Summary      Service banner
// @Description  Returns the service name and pointers to the docs and health endpoints
// @Tags         Meta
// @Produce      json
// @Success      200  {object}  RootResponse
// @Router       / [get]
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: "Site Q&A API",
		Docs:    "/openapi.json",
		Health:  "/health",
	})
}

// handleHealth godoc
// @Summary      Health check
// @Description  Reports whether the vector index is reachable and holds data
// @Tags         Meta
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  ErrorResponse  "Vector store unreachable"
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ingestService.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "vector store unavailable")
		return
	}

	status := "healthy"
	if stats.TotalDocuments == 0 {
		status = "no_data"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:           status,
		VectorStoreCount: stats.TotalDocuments,
	})
}

// handleStats godoc
// @Summary      Knowledge base statistics
// @Description  Returns index size, configured models, and the last crawl outcome
// @Tags         Meta
// @Produce      json
// @Success      200  {object}  StatsResponse
// @Failure      503  {object}  ErrorResponse  "Vector store unreachable"
// @Router       /stats [get]
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ingestService.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "vector store unavailable")
		return
	}

	status := s.ingestService.Status()
	writeJSON(w, http.StatusOK, StatsResponse{
		TotalDocuments:  stats.TotalDocuments,
		CollectionName:  stats.CollectionName,
		EmbeddingModel:  stats.EmbeddingModel,
		LLMModel:        stats.LLMModel,
		IsCrawling:      status.IsRunning(),
		LastCrawlResult: crawlResponseFromResult(status.LastRun),
	})
}

// handleCrawl godoc
// @Summary      Crawl a website
// @Description  Crawls the given site, chunks and embeds the content, and replaces the knowledge base. Runs synchronously; the response carries final counts. Pipeline failures are reported in the body with success=false, not as HTTP errors.
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        request  body      CrawlRequest  true  "Crawl parameters"
// @Success      200      {object}  CrawlResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body or parameters"
// @Failure      409      {object}  ErrorResponse  "A crawl is already in progress"
// @Router       /crawl [post]
func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	var req CrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := domain.DefaultIngestOptions(req.BaseURL)
	if req.MaxPages != nil {
		opts.MaxPages = *req.MaxPages
	}
	if req.CrawlDelay != nil {
		opts.CrawlDelay = time.Duration(*req.CrawlDelay * float64(time.Second))
	}

	result, err := s.ingestService.Ingest(r.Context(), opts)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrIngestInProgress):
			writeError(w, http.StatusConflict, "a crawl is already in progress")
		default:
			writeError(w, http.StatusInternalServerError, "ingestion failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, crawlResponseFromResult(result))
}

// handleCrawlStatus godoc
// @Summary      Crawl status
// @Description  Reports whether a crawl is running and the last completed result
// @Tags         Ingestion
// @Produce      json
// @Success      200  {object}  CrawlStatusResponse
// @Router       /crawl/status [get]
func (s *Server) handleCrawlStatus(w http.ResponseWriter, r *http.Request) {
	status := s.ingestService.Status()

	resp := CrawlStatusResponse{
		IsCrawling: status.IsRunning(),
		StartedAt:  status.StartedAt,
		LastResult: crawlResponseFromResult(status.LastRun),
	}
	if status.LastRun != nil {
		resp.LastCrawlTime = &status.LastRun.FinishedAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleAsk godoc
// @Summary      Ask a question
// @Description  Retrieves the most relevant indexed chunks and generates an answer restricted to them. Business-level misses (no relevant content, generation failure) return success=false in a 200 response.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      AskRequest  true  "Question"
// @Success      200      {object}  AnswerResponse
// @Failure      400      {object}  ErrorResponse  "Empty question or top_k out of range"
// @Failure      503      {object}  ErrorResponse  "Knowledge base empty or unreachable"
// @Router       /ask [post]
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	topK := 0
	if req.TopK != nil {
		if *req.TopK < 1 || *req.TopK > 10 {
			writeError(w, http.StatusBadRequest, "top_k must be between 1 and 10")
			return
		}
		topK = *req.TopK
	}

	stats, err := s.ingestService.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "vector store unavailable")
		return
	}
	if stats.TotalDocuments == 0 {
		writeError(w, http.StatusServiceUnavailable,
			"Knowledge base is empty. Please crawl a website first using the /crawl endpoint.")
		return
	}

	answer, err := s.answerService.Ask(r.Context(), req.Question, topK)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to process question")
		return
	}

	writeJSON(w, http.StatusOK, AnswerResponse{
		Question:        answer.Question,
		Answer:          answer.Text,
		Sources:         answer.Sources,
		Success:         answer.Success,
		NumContextsUsed: answer.NumContexts,
	})
}

// handleOpenAPI godoc
// @Summary      OpenAPI document
// @Description  Returns the generated OpenAPI specification for this API
// @Tags         Meta
// @Produce      json
// @Success      200  {object}  object
// @Router       /openapi.json [get]
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "api document unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
