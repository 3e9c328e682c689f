package usecase

import (
	"strconv"
	"strings"

	"careerlink/internal/domain/job"
)

const (
	jobBrowseKeyPrefix  = "jobs:browse:"
	jobBrowseKeyPattern = jobBrowseKeyPrefix + "*"
	jobBrowseAllSegment = "all"

	// outside jobBrowseKeyPattern so invalidation never resets it
	jobBrowseGenerationKey = "jobs:browse-generation"
)

// JobBrowseCacheKey returns the cache key of the active job listing for f at
// cache generation gen.
func JobBrowseCacheKey(f job.Filter, gen int64) string {
	seg := strings.ToLower(strings.TrimSpace(string(f.JobType)))
	if seg == "" {
		seg = jobBrowseAllSegment
	}
	return jobBrowseKeyPrefix + strconv.FormatInt(gen, 10) + ":" + seg
}
