package http

import (
	"net/http"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/coverage"
	"github.com/cmlabs-hris/rota-backend-go/internal/handler/http/response"
)

type CoverageHandler interface {
	Report(w http.ResponseWriter, r *http.Request)
}

type coverageHandlerImpl struct {
	coverageService coverage.CoverageService
}

func NewCoverageHandler(coverageService coverage.CoverageService) CoverageHandler {
	return &coverageHandlerImpl{
		coverageService: coverageService,
	}
}

func (h *coverageHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	filter := coverage.CoverageFilter{
		Date: r.URL.Query().Get("date"),
	}
	if department := r.URL.Query().Get("department"); department != "" {
		filter.Department = &department
	}

	result, err := h.coverageService.Report(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
