package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danyol08/PMS-Monitoring/internal/http/middleware"
	"github.com/danyol08/PMS-Monitoring/internal/model"
	"github.com/danyol08/PMS-Monitoring/internal/repository"
	"github.com/danyol08/PMS-Monitoring/internal/service"
)

type Handler struct {
	maintenance   *service.MaintenanceService
	notifications *repository.NotificationRepository
	log           zerolog.Logger
}

func NewHandler(maintenance *service.MaintenanceService, notifications *repository.NotificationRepository, log zerolog.Logger) *Handler {
	return &Handler{maintenance: maintenance, notifications: notifications, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/contracts", h.listContracts)
	protected.POST("/contracts", h.createContract)
	protected.GET("/contracts/:id", h.getContract)
	protected.PUT("/contracts/:id", h.updateContract)
	protected.DELETE("/contracts/:id", h.deleteContract)
	protected.POST("/contracts/:id/complete-pms", h.completePMS)
	protected.GET("/contracts/:id/pms-schedule", h.pmsSchedule)
	protected.POST("/contracts/expire-check", h.expireCheck)

	protected.GET("/maintenance/upcoming", h.upcomingMaintenance)
	protected.GET("/dashboard/stats", h.dashboardStats)

	protected.GET("/notifications", h.listNotifications)
	protected.GET("/notifications/summary", h.notificationSummary)
	protected.POST("/notifications/:id/read", h.markNotificationRead)

	protected.GET("/history", h.serviceHistory)
	protected.POST("/history/export", h.exportHistoryExcel)
	protected.POST("/history/export/pdf", h.exportHistoryPDF)
}

type contractRequest struct {
	ContractType        string `json:"contract_type" binding:"required"`
	EndUser             string `json:"end_user" binding:"required"`
	Model               string `json:"model"`
	PartNumber          string `json:"part_number"`
	Serial              string `json:"serial"`
	Branch              string `json:"branch"`
	TechnicalSpecialist string `json:"technical_specialist"`
	DateOfContract      string `json:"date_of_contract" binding:"required"`
	EndOfContract       string `json:"end_of_contract" binding:"required"`
	NextPMSSchedule     string `json:"next_pms_schedule"`
	Status              string `json:"status"`
	Frequency           string `json:"frequency"`
	PONumber            string `json:"po_number"`
	Documentation       string `json:"documentation"`
}

func (h *Handler) createContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dateOfContract, err := parseDate(req.DateOfContract)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_contract"})
		return
	}
	endOfContract, err := parseDate(req.EndOfContract)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_of_contract"})
		return
	}
	var nextPMS time.Time
	if strings.TrimSpace(req.NextPMSSchedule) != "" {
		nextPMS, err = parseDate(req.NextPMSSchedule)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid next_pms_schedule"})
			return
		}
	}

	contract, err := h.maintenance.CreateContract(c.Request.Context(), service.CreateContractInput{
		ContractType:        model.ContractType(strings.ToLower(strings.TrimSpace(req.ContractType))),
		EndUser:             req.EndUser,
		Model:               req.Model,
		PartNumber:          req.PartNumber,
		Serial:              req.Serial,
		Branch:              req.Branch,
		TechnicalSpecialist: req.TechnicalSpecialist,
		DateOfContract:      dateOfContract,
		EndOfContract:       endOfContract,
		NextPMSSchedule:     nextPMS,
		Status:              model.ContractStatus(req.Status),
		Frequency:           model.Frequency(req.Frequency),
		PONumber:            req.PONumber,
		Documentation:       req.Documentation,
		Principal:           principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) listContracts(c *gin.Context) {
	var contractType *model.ContractType
	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		parsed := model.ContractType(strings.ToLower(raw))
		contractType = &parsed
	}

	contracts, err := h.maintenance.ListContracts(c.Request.Context(), contractType)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": contracts, "total": len(contracts)})
}

func (h *Handler) getContract(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	contract, err := h.maintenance.GetContract(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

type updateContractRequest struct {
	EndUser             *string `json:"end_user"`
	Model               *string `json:"model"`
	PartNumber          *string `json:"part_number"`
	Serial              *string `json:"serial"`
	Branch              *string `json:"branch"`
	TechnicalSpecialist *string `json:"technical_specialist"`
	DateOfContract      *string `json:"date_of_contract"`
	EndOfContract       *string `json:"end_of_contract"`
	NextPMSSchedule     *string `json:"next_pms_schedule"`
	Status              *string `json:"status"`
	Frequency           *string `json:"frequency"`
	PONumber            *string `json:"po_number"`
	Documentation       *string `json:"documentation"`
	ServiceReport       *string `json:"service_report"`
	History             *string `json:"history"`
}

func (h *Handler) updateContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	var req updateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.UpdateContractInput{
		EndUser:             req.EndUser,
		Model:               req.Model,
		PartNumber:          req.PartNumber,
		Serial:              req.Serial,
		Branch:              req.Branch,
		TechnicalSpecialist: req.TechnicalSpecialist,
		PONumber:            req.PONumber,
		Documentation:       req.Documentation,
		ServiceReport:       req.ServiceReport,
		History:             req.History,
		Principal:           principal,
	}
	if input.DateOfContract, err = parseOptionalDate(req.DateOfContract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_contract"})
		return
	}
	if input.EndOfContract, err = parseOptionalDate(req.EndOfContract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_of_contract"})
		return
	}
	if input.NextPMSSchedule, err = parseOptionalDate(req.NextPMSSchedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid next_pms_schedule"})
		return
	}
	if req.Status != nil {
		status := model.ContractStatus(*req.Status)
		input.Status = &status
	}
	if req.Frequency != nil {
		frequency := model.Frequency(*req.Frequency)
		input.Frequency = &frequency
	}

	contract, err := h.maintenance.UpdateContract(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) deleteContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	if err := h.maintenance.DeleteContract(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contract deleted"})
}

type completePMSRequest struct {
	Technician     string `json:"technician" binding:"required"`
	CompletionDate string `json:"completion_date"`
	SRNumber       string `json:"sr_number"`
	SalesName      string `json:"sales_name"`
	Location       string `json:"location"`
	ServiceReport  string `json:"service_report"`
}

func (h *Handler) completePMS(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	var req completePMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var completionDate time.Time
	if strings.TrimSpace(req.CompletionDate) != "" {
		completionDate, err = parseDate(req.CompletionDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completion_date"})
			return
		}
	}

	result, err := h.maintenance.CompletePMS(c.Request.Context(), service.CompletePMSInput{
		ContractID:     id,
		Technician:     req.Technician,
		CompletionDate: completionDate,
		SRNumber:       req.SRNumber,
		SalesName:      req.SalesName,
		Location:       req.Location,
		ServiceReport:  req.ServiceReport,
		Principal:      principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "PMS completed successfully",
		"contract":          result.Contract,
		"service_history":   result.Record,
		"next_pms_schedule": result.Contract.NextPMSSchedule.Format("2006-01-02"),
	})
}

func (h *Handler) pmsSchedule(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	series, err := h.maintenance.FullSchedule(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	dates := make([]string, 0, len(series))
	for _, date := range series {
		dates = append(dates, date.Format("2006-01-02"))
	}
	c.JSON(http.StatusOK, gin.H{"schedule": dates, "total": len(dates)})
}

func (h *Handler) expireCheck(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	expired, err := h.maintenance.ExpireCheck(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": expired})
}

func (h *Handler) upcomingMaintenance(c *gin.Context) {
	windowDays := 0
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
			return
		}
		windowDays = parsed
	}

	upcoming, err := h.maintenance.UpcomingMaintenance(c.Request.Context(), windowDays)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": upcoming, "total": len(upcoming)})
}

func (h *Handler) dashboardStats(c *gin.Context) {
	stats, err := h.maintenance.DashboardStats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) notificationSummary(c *gin.Context) {
	summary, err := h.maintenance.PeriodSummary(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_due":     summary.TotalDue,
		"overdue_count": summary.OverdueCount,
		"by_period":     summary.ByPeriod,
		"period_order":  summary.PeriodLabels(),
	})
}

func (h *Handler) listNotifications(c *gin.Context) {
	limit := 50
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	notifications, err := h.notifications.ListUnread(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "total": len(notifications)})
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}

func (h *Handler) serviceHistory(c *gin.Context) {
	contractID, err := parseOptionalContractID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_id"})
		return
	}

	records, err := h.maintenance.ServiceHistory(c.Request.Context(), contractID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records, "total": len(records)})
}

func (h *Handler) exportHistoryExcel(c *gin.Context) {
	contractID, err := parseOptionalContractID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_id"})
		return
	}

	result, err := h.maintenance.ExportHistoryExcel(c.Request.Context(), contractID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) exportHistoryPDF(c *gin.Context) {
	contractID, err := parseOptionalContractID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_id"})
		return
	}

	result, err := h.maintenance.ExportHistoryPDF(c.Request.Context(), contractID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvariant):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Param("id")))
}

func parseOptionalContractID(c *gin.Context) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query("contract_id"))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	parsed, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
