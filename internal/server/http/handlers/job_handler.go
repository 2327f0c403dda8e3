package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/server/http/dto"
)

// JobHandler manages posting-related endpoints.
type JobHandler struct {
	facade JobFacade
}

// NewJobHandler constructs JobHandler.
func NewJobHandler(facade JobFacade) *JobHandler {
	return &JobHandler{facade: facade}
}

// List handles GET /api/jobs.
func (h *JobHandler) List(c *gin.Context) {
	var query dto.JobListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	jobs, err := h.facade.Jobs(c.Request.Context(), model.JobFilter{
		Region:    query.Region,
		Category:  query.Category,
		Education: query.Education,
		Keyword:   query.Keyword,
		Limit:     query.Limit,
		Offset:    query.Offset,
	})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(jobs) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		response = append(response, toJobResponse(j))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	job, err := h.facade.Job(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toJobResponse(*job))
}

// Compare handles POST /api/jobs/compare.
func (h *JobHandler) Compare(c *gin.Context) {
	var req dto.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	cmp, err := h.facade.CompareJobs(c.Request.Context(), req.JobIDs)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidComparison):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	response := dto.CompareResponse{Titles: cmp.Titles, Rows: make([]dto.CompareRowResponse, 0, len(cmp.Rows))}
	for _, row := range cmp.Rows {
		response.Rows = append(response.Rows, dto.CompareRowResponse{Label: row.Label, Values: row.Values})
	}
	c.JSON(http.StatusOK, response)
}

func toJobResponse(job model.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Department:  job.Department,
		Region:      job.Region,
		Category:    job.Category,
		Education:   job.Education,
		Vacancies:   job.Vacancies,
		Deadline:    job.Deadline,
		PublishedAt: job.PublishedAt,
	}
}
