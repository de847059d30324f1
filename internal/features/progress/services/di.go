package progress_services

import (
	"sync"

	"projecttrack/internal/cache"
	progress_repositories "projecttrack/internal/features/progress/repositories"
	projects_models "projecttrack/internal/features/projects/models"
	projects_repositories "projecttrack/internal/features/projects/repositories"
	cache_utils "projecttrack/internal/util/cache"
	"projecttrack/internal/util/logger"
	"projecttrack/internal/util/rate_limit"
)

var (
	progressServiceOnce sync.Once
	progressService     *ProgressService
)

// GetProgressService builds the singleton lazily: the cache and rate limiter
// open a valkey connection on first use and must not do so at import time.
func GetProgressService() *ProgressService {
	progressServiceOnce.Do(func() {
		progressService = &ProgressService{
			progressStore: &progress_repositories.ProgressRepository{},
			projectStore:  &projects_repositories.ProjectRepository{},
			projectCache:  cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "progress:project:"),
			rateLimiter:   rate_limit.NewRateLimiter(),
			logger:        logger.GetLogger(),
		}
	})

	return progressService
}
