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

type MilestoneHandler struct {
	milestones *service.MilestoneService
	logger     *zap.Logger
}

func NewMilestoneHandler(milestones *service.MilestoneService, logger *zap.Logger) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones, logger: logger}
}

func (h *MilestoneHandler) List(c *gin.Context) {
	var projectID *int64
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("ListMilestones: invalid project_id format",
				zap.String("project_id", raw),
				zap.Error(err),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}
		projectID = &id
	}

	milestones, err := h.milestones.List(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("ListMilestones: failed to fetch milestones", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch milestones"})
		return
	}

	h.logger.Info("ListMilestones: success", zap.Int("milestone_count", len(milestones)))
	c.JSON(http.StatusOK, gin.H{"milestones": milestones})
}

func (h *MilestoneHandler) Create(c *gin.Context) {
	var in service.CreateMilestoneInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("CreateMilestone: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.logger.Info("CreateMilestone request received",
		zap.Int64("project_id", in.ProjectID),
		zap.String("title", in.Title),
	)

	m, err := h.milestones.Create(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		default:
			h.logger.Error("CreateMilestone: failed to create milestone", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create milestone"})
		}
		return
	}

	h.logger.Info("CreateMilestone: success", zap.Int64("milestone_id", m.ID))
	c.JSON(http.StatusCreated, m)
}

func (h *MilestoneHandler) Update(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("UpdateMilestone: invalid milestone id format",
			zap.String("milestone_id", idStr),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid milestone id"})
		return
	}

	var in service.UpdateMilestoneInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("UpdateMilestone: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.milestones.Update(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "milestone not found"})
		default:
			h.logger.Error("UpdateMilestone: failed to update milestone",
				zap.Int64("milestone_id", id),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update milestone"})
		}
		return
	}

	h.logger.Info("UpdateMilestone: success",
		zap.Int64("milestone_id", id),
		zap.Bool("released", result.Released),
		zap.Bool("ledger_recorded", result.LedgerRecorded),
	)
	c.JSON(http.StatusOK, result)
}

func (h *MilestoneHandler) Delete(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("DeleteMilestone: invalid milestone id format",
			zap.String("milestone_id", idStr),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid milestone id"})
		return
	}

	if err := h.milestones.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "milestone not found"})
			return
		}
		h.logger.Error("DeleteMilestone: failed to delete milestone",
			zap.Int64("milestone_id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete milestone"})
		return
	}

	h.logger.Info("DeleteMilestone: success", zap.Int64("milestone_id", id))
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
