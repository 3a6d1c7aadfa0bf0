package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/application/usecase"
	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/reporting"
)

// ExporterFactory devuelve el exportador de un formato (csv, xml, pdf); charset aplica a CSV.
type ExporterFactory func(format, charset string) (usecase.ReportExporter, error)

// ReportHandler reportes de inventario (ADMIN o MANAGER).
type ReportHandler struct {
	uc        *usecase.ReportingUseCase
	exporters ExporterFactory
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportingUseCase, exporters ExporterFactory) *ReportHandler {
	return &ReportHandler{uc: uc, exporters: exporters}
}

// InventoryTurnover godoc
// @Summary      Rotación de inventario
// @Description  COGS del periodo / inventario promedio, por producto y bodega.
// @Tags         reports
// @Security     Bearer
// @Produce      json,text/csv,application/xml,application/pdf
// @Param        productId    query     string  false  "Filtrar por producto"
// @Param        warehouseId  query     string  false  "Filtrar por bodega"
// @Param        startDate    query     string  true   "Inicio (YYYY-MM-DD)"
// @Param        endDate      query     string  true   "Fin (YYYY-MM-DD)"
// @Param        format       query     string  false  "json, csv, xml o pdf"  default(json)
// @Param        charset      query     string  false  "utf-8 o windows-1252 (solo csv)"
// @Success      200          {array}   dto.InventoryTurnoverReport
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      403          {object}  dto.ErrorResponse
// @Router       /api/reports/inventory-turnover [get]
func (h *ReportHandler) InventoryTurnover(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return handleError(c, err)
	}
	rows, err := h.uc.InventoryTurnover(c.UserContext(), callerFromCtx(c), reportFilter(c), start, end)
	if err != nil {
		return handleError(c, err)
	}
	return h.respond(c, rows, func() dto.ReportTable { return usecase.TurnoverTable(rows) })
}

// StockValuation godoc
// @Summary      Valorización de inventario
// @Description  Existencia actual por costo unitario, por producto y bodega.
// @Tags         reports
// @Security     Bearer
// @Produce      json,text/csv,application/xml,application/pdf
// @Param        productId    query     string  false  "Filtrar por producto"
// @Param        warehouseId  query     string  false  "Filtrar por bodega"
// @Param        format       query     string  false  "json, csv, xml o pdf"  default(json)
// @Param        charset      query     string  false  "utf-8 o windows-1252 (solo csv)"
// @Success      200          {array}   dto.StockValuationReport
// @Failure      403          {object}  dto.ErrorResponse
// @Router       /api/reports/stock-valuation [get]
func (h *ReportHandler) StockValuation(c *fiber.Ctx) error {
	rows, err := h.uc.StockValuation(c.UserContext(), callerFromCtx(c), reportFilter(c))
	if err != nil {
		return handleError(c, err)
	}
	return h.respond(c, rows, func() dto.ReportTable { return usecase.ValuationTable(rows) })
}

// InventoryTrends godoc
// @Summary      Tendencia de inventario
// @Description  Existencia diaria reconstruida desde el log de movimientos.
// @Tags         reports
// @Security     Bearer
// @Produce      json,text/csv,application/xml,application/pdf
// @Param        productId    query     string  false  "Filtrar por producto"
// @Param        warehouseId  query     string  false  "Filtrar por bodega"
// @Param        startDate    query     string  true   "Inicio (YYYY-MM-DD)"
// @Param        endDate      query     string  true   "Fin (YYYY-MM-DD)"
// @Param        format       query     string  false  "json, csv, xml o pdf"  default(json)
// @Param        charset      query     string  false  "utf-8 o windows-1252 (solo csv)"
// @Success      200          {array}   dto.InventoryTrendReport
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      403          {object}  dto.ErrorResponse
// @Router       /api/reports/inventory-trends [get]
func (h *ReportHandler) InventoryTrends(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return handleError(c, err)
	}
	rows, err := h.uc.InventoryTrends(c.UserContext(), callerFromCtx(c), reportFilter(c), start, end)
	if err != nil {
		return handleError(c, err)
	}
	return h.respond(c, rows, func() dto.ReportTable { return usecase.TrendTable(rows) })
}

// respond devuelve JSON o el documento exportado según ?format.
func (h *ReportHandler) respond(c *fiber.Ctx, rows any, table func() dto.ReportTable) error {
	format := strings.ToLower(c.Query("format", "json"))
	if format == "json" {
		return c.JSON(rows)
	}
	exporter, err := h.exporters(format, c.Query("charset"))
	if err != nil {
		return handleError(c, err)
	}
	t := table()
	doc, err := exporter.Export(t)
	if err != nil {
		return handleError(c, err)
	}
	if doc.ETag != "" {
		c.Set(fiber.HeaderETag, doc.ETag)
		if c.Get(fiber.HeaderIfNoneMatch) == doc.ETag {
			return c.SendStatus(fiber.StatusNotModified)
		}
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", t.Name+"."+doc.Extension))
	return c.Send(doc.Body)
}

func reportFilter(c *fiber.Ctx) dto.ReportFilter {
	return dto.ReportFilter{ProductID: c.Query("productId"), WarehouseID: c.Query("warehouseId")}
}

// parsePeriod lee startDate/endDate como días de calendario locales. Ausentes quedan en cero
// y el caso de uso decide si son obligatorios.
func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := parseDate(c.Query("startDate"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate: %v", domain.ErrInvalidInput, err)
	}
	end, err := parseDate(c.Query("endDate"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate: %v", domain.ErrInvalidInput, err)
	}
	return start, end, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(reporting.DateLayout, s, time.Local)
}
