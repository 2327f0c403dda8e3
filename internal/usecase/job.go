package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/domain/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	minCompareJobs = 2
	maxCompareJobs = 5
)

// JobUseCase serves exam posting listings and comparisons.
type JobUseCase struct {
	jobs repository.JobRepository
}

// NewJobUseCase constructs JobUseCase.
func NewJobUseCase(jobs repository.JobRepository) *JobUseCase {
	return &JobUseCase{jobs: jobs}
}

// List returns postings matching the filter, newest first.
func (u *JobUseCase) List(ctx context.Context, filter model.JobFilter) ([]model.Job, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return u.jobs.List(ctx, filter)
}

// Get fetches a single posting.
func (u *JobUseCase) Get(ctx context.Context, id int64) (*model.Job, error) {
	return u.jobs.GetByID(ctx, id)
}

// Compare builds a side-by-side view of the requested postings. Between
// two and five distinct postings may be compared; all must exist.
func (u *JobUseCase) Compare(ctx context.Context, ids []int64) (*model.Comparison, error) {
	distinct := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	if len(distinct) < minCompareJobs || len(distinct) > maxCompareJobs {
		return nil, domainErrors.ErrInvalidComparison
	}

	jobs, err := u.jobs.GetByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	if len(jobs) != len(distinct) {
		return nil, domainErrors.ErrNotFound
	}

	// preserve request order
	byID := make(map[int64]model.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}
	ordered := make([]model.Job, 0, len(distinct))
	for _, id := range distinct {
		ordered = append(ordered, byID[id])
	}

	return buildComparison(ordered), nil
}

func buildComparison(jobs []model.Job) *model.Comparison {
	cmp := &model.Comparison{Titles: make([]string, 0, len(jobs))}
	for _, j := range jobs {
		cmp.Titles = append(cmp.Titles, j.Title)
	}

	row := func(label string, value func(model.Job) string) {
		r := model.ComparisonRow{Label: label, Values: make([]string, 0, len(jobs))}
		for _, j := range jobs {
			r.Values = append(r.Values, value(j))
		}
		cmp.Rows = append(cmp.Rows, r)
	}

	row("department", func(j model.Job) string { return j.Department })
	row("region", func(j model.Job) string { return j.Region })
	row("category", func(j model.Job) string { return j.Category })
	row("education", func(j model.Job) string { return j.Education })
	row("vacancies", func(j model.Job) string { return fmt.Sprintf("%d", j.Vacancies) })
	row("deadline", func(j model.Job) string { return j.Deadline.Format(time.DateOnly) })

	return cmp
}
