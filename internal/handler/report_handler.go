package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/repository"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/service"
)

type ReportHandler struct {
	finance *service.FinanceService
	logger  *zap.Logger
}

func NewReportHandler(finance *service.FinanceService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{finance: finance, logger: logger}
}

func (h *ReportHandler) Overview(c *gin.Context) {
	h.logger.Info("Overview request received",
		zap.String("client_ip", c.ClientIP()),
	)

	report, err := h.finance.Overview(c.Request.Context())
	if err != nil {
		h.logger.Error("Overview: failed to build report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build overview"})
		return
	}

	h.logger.Info("Overview: success",
		zap.Int("project_count", len(report.Projects)),
	)
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) ProjectFinancials(c *gin.Context) {
	projectID, ok := parseIDParam(c, h.logger, "ProjectFinancials")
	if !ok {
		return
	}

	report, err := h.finance.ProjectFinancials(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.logger.Warn("ProjectFinancials: project not found",
				zap.Int64("project_id", projectID),
			)
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("ProjectFinancials: failed to build report",
			zap.Int64("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build project financials"})
		return
	}

	h.logger.Info("ProjectFinancials: success", zap.Int64("project_id", projectID))
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) ProjectAccountSummary(c *gin.Context) {
	projectID, ok := parseIDParam(c, h.logger, "ProjectAccountSummary")
	if !ok {
		return
	}

	report, err := h.finance.ProjectAccountSummary(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("ProjectAccountSummary: failed to build report",
			zap.Int64("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build project account summary"})
		return
	}

	h.logger.Info("ProjectAccountSummary: success", zap.Int64("project_id", projectID))
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) DeveloperAccountSummary(c *gin.Context) {
	workerID, ok := parseIDParam(c, h.logger, "DeveloperAccountSummary")
	if !ok {
		return
	}

	report, err := h.finance.DeveloperAccountSummary(c.Request.Context(), workerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "worker not found"})
			return
		}
		h.logger.Error("DeveloperAccountSummary: failed to build report",
			zap.Int64("worker_id", workerID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build developer account summary"})
		return
	}

	h.logger.Info("DeveloperAccountSummary: success", zap.Int64("worker_id", workerID))
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) TimeByProject(c *gin.Context) {
	rows, err := h.finance.TimeByProject(c.Request.Context())
	if err != nil {
		h.logger.Error("TimeByProject: failed to build report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build time report"})
		return
	}

	h.logger.Info("TimeByProject: success", zap.Int("project_count", len(rows)))
	c.JSON(http.StatusOK, gin.H{"projects": rows})
}

// parseIDParam reads the :id path parameter shared by the per-entity report
// routes.
func parseIDParam(c *gin.Context, logger *zap.Logger, op string) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logger.Warn(op+": invalid id format",
			zap.String("id", idStr),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
