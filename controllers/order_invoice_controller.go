package controllers

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadInvoice streams a PDF invoice for one of the user's orders
func DownloadInvoice(c *gin.Context) {
	utils.LogInfo("DownloadInvoice called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status == models.OrderStatusCancelled {
		utils.BadRequest(c, "Invoice is not available for cancelled orders", nil)
		return
	}

	var address models.Address
	config.DB.First(&address, order.AddressID)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(95, 10, "StyleNest")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 10, "Tax Invoice", "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(95, 6, fmt.Sprintf("Invoice No: %s", order.OrderNumber))
	pdf.CellFormat(95, 6, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006")), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(190, 6, "Ship To:")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(190, 5, address.Name)
	pdf.Ln(5)
	pdf.Cell(190, 5, address.Line1)
	pdf.Ln(5)
	if address.Line2 != "" {
		pdf.Cell(190, 5, address.Line2)
		pdf.Ln(5)
	}
	pdf.Cell(190, 5, fmt.Sprintf("%s, %s %s", address.City, address.State, address.PostalCode))
	pdf.Ln(5)
	pdf.Cell(190, 5, fmt.Sprintf("Phone: %s", address.Phone))
	pdf.Ln(8)

	// Item table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(80, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.OrderItems {
		name := item.ProductName
		if item.VariantName != "" {
			name = fmt.Sprintf("%s (%s)", name, item.VariantName)
		}
		pdf.CellFormat(80, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", item.Total), "1", 1, "R", false, 0, "")
	}

	writeTotal := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(140, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, value, "1", 1, "R", false, 0, "")
	}

	writeTotal("Subtotal", fmt.Sprintf("%.2f", order.Subtotal), false)
	if order.CouponDiscount > 0 {
		writeTotal(fmt.Sprintf("Discount (%s)", order.CouponCode), fmt.Sprintf("-%.2f", order.CouponDiscount), false)
	}
	writeTotal("Shipping", fmt.Sprintf("%.2f", order.ShippingCharge), false)
	if order.Tax > 0 {
		writeTotal("Tax", fmt.Sprintf("%.2f", order.Tax), false)
	}
	writeTotal("Grand Total", fmt.Sprintf("%.2f", order.FinalTotal), true)

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(190, 5, "Thank you for shopping with StyleNest.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate invoice for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}

	utils.LogInfo("Generated invoice for order ID: %d", order.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", order.OrderNumber))
	c.Data(200, "application/pdf", buf.Bytes())
}
