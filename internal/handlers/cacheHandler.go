package handlers

import (
	"net/http"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/api"
)

// only the leading entries go in the response, the full list can get long
const cacheFileListLimit = 10

// CacheStatsHandler godoc
// @Summary      Vector index cache statistics
// @Description  Reports the on-disk index cache directory, file count, and total size.
// @Tags         Cache
// @Produce      json
// @Success      200  {object}  api.CacheStatsResponse
// @Failure      500  {object}  api.ErrorResponse  "Failed to read cache directory"
// @Router       /cache/stats [get]
func CacheStatsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		files, sizeMB, err := handlerInstance.store.Stats()
		if err != nil {
			logCH.Error("Couldn't read cache stats :", "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Failed to get cache stats")
			return
		}

		listed := files
		if len(listed) > cacheFileListLimit {
			listed = listed[:cacheFileListLimit]
		}

		writeJsonResponse(w, http.StatusOK, api.CacheStatsResponse{
			CacheDirectory:   handlerInstance.store.Dir(),
			TotalCachedFiles: len(files),
			TotalCacheSizeMB: sizeMB,
			CacheFiles:       listed,
		})
	}
}

// CacheClearHandler godoc
// @Summary      Clear the vector index cache
// @Description  Removes every cached index file from disk.
// @Tags         Cache
// @Produce      json
// @Success      200  {object}  api.CacheClearResponse
// @Failure      500  {object}  api.ErrorResponse  "Failed to remove cache files"
// @Router       /cache/clear [delete]
func CacheClearHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		removed, err := handlerInstance.store.Clear()
		if err != nil {
			logCH.Error("Couldn't clear cache :", "err", err, "removed", removed)
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Failed to clear cache")
			return
		}

		logCH.Info("Cache cleared", "removed", removed)
		writeJsonResponse(w, http.StatusOK, api.CacheClearResponse{
			Message:      "Cache cleared successfully",
			RemovedFiles: removed,
		})
	}
}
