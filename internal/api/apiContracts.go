package api

// requests---------------------

type RunRequest struct {
	Documents string   `json:"documents" validate:"required"`
	Questions []string `json:"questions" validate:"required"`
}

// responses--------------------

type RunResponse struct {
	Answers []string `json:"answers"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"File download failed"`
}

type HealthResponse struct {
	Status         string `json:"status" example:"healthy"`
	Message        string `json:"message"`
	EmbeddingModel string `json:"embedding_model"`
}

type CacheStatsResponse struct {
	CacheDirectory   string   `json:"cache_directory"`
	TotalCachedFiles int      `json:"total_cached_files"`
	TotalCacheSizeMB float64  `json:"total_cache_size_mb"`
	CacheFiles       []string `json:"cache_files"`
}

type CacheClearResponse struct {
	Message      string `json:"message"`
	RemovedFiles int    `json:"removed_files"`
}
