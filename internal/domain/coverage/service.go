package coverage

import "context"

type CoverageService interface {
	// Report counts employees per shift as of the filter's date, resolving
	// rotating batches to the shift occupying that day.
	Report(ctx context.Context, filter CoverageFilter) (CoverageResponse, error)
}
