package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// salesReportRange parses start/end query params, defaulting to the
// last 30 days.
func salesReportRange(c *gin.Context) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if v := c.Query("start"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date")
		}
		start = parsed
	}
	if v := c.Query("end"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date")
		}
		// Include the whole end day
		end = parsed.AddDate(0, 0, 1)
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("end date before start date")
	}
	return start, end, nil
}

// GetSalesReport summarizes delivered orders over a date range
func GetSalesReport(c *gin.Context) {
	utils.LogInfo("GetSalesReport called")

	start, end, err := salesReportRange(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var orders []models.Order
	if err := config.DB.Where("status = ? AND created_at >= ? AND created_at < ?", models.OrderStatusDelivered, start, end).
		Order("created_at").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch delivered orders: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	var gross, discounts, net float64
	for _, order := range orders {
		gross += order.Subtotal
		discounts += order.CouponDiscount
		net += order.FinalTotal
	}

	utils.Success(c, "Sales report generated successfully", gin.H{
		"start":           start.Format("2006-01-02"),
		"end":             end.AddDate(0, 0, -1).Format("2006-01-02"),
		"order_count":     len(orders),
		"gross_sales":     fmt.Sprintf("%.2f", utils.RoundMoney(gross)),
		"total_discounts": fmt.Sprintf("%.2f", utils.RoundMoney(discounts)),
		"net_sales":       fmt.Sprintf("%.2f", utils.RoundMoney(net)),
	})
}

// ExportSalesReport downloads the delivered-order report as XLSX
func ExportSalesReport(c *gin.Context) {
	utils.LogInfo("ExportSalesReport called")

	start, end, err := salesReportRange(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("User").
		Where("status = ? AND created_at >= ? AND created_at < ?", models.OrderStatusDelivered, start, end).
		Order("created_at").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch delivered orders: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.LogError("Failed to create sheet: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"Order Number", "Date", "Customer", "Subtotal", "Discount", "Shipping", "Tax", "Total", "Payment Method"} {
		cell := header.AddCell()
		cell.Value = title
	}

	var gross, discounts, net float64
	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().Value = order.OrderNumber
		row.AddCell().Value = order.CreatedAt.Format("2006-01-02")
		row.AddCell().Value = order.User.Username
		row.AddCell().SetFloatWithFormat(order.Subtotal, "0.00")
		row.AddCell().SetFloatWithFormat(order.CouponDiscount, "0.00")
		row.AddCell().SetFloatWithFormat(order.ShippingCharge, "0.00")
		row.AddCell().SetFloatWithFormat(order.Tax, "0.00")
		row.AddCell().SetFloatWithFormat(order.FinalTotal, "0.00")
		row.AddCell().Value = order.PaymentMethod

		gross += order.Subtotal
		discounts += order.CouponDiscount
		net += order.FinalTotal
	}

	sheet.AddRow()
	totals := sheet.AddRow()
	totals.AddCell().Value = "Totals"
	totals.AddCell()
	totals.AddCell()
	totals.AddCell().SetFloatWithFormat(utils.RoundMoney(gross), "0.00")
	totals.AddCell().SetFloatWithFormat(utils.RoundMoney(discounts), "0.00")
	totals.AddCell()
	totals.AddCell()
	totals.AddCell().SetFloatWithFormat(utils.RoundMoney(net), "0.00")

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write XLSX: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	filename := fmt.Sprintf("sales-report-%s.xlsx", time.Now().Format("20060102"))
	utils.LogInfo("Exported sales report with %d orders", len(orders))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
