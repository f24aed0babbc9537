package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/models"
	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
)

// DownloadSaleBill renders the printable invoice for one sale.
// Amounts use "Rs." because the built-in PDF fonts have no rupee glyph.
func DownloadSaleBill(c *gin.Context) {
	var sale models.Sale
	err := config.DB.Preload("Items.Product").Preload("Payments").
		First(&sale, c.Param("id")).Error
	if err != nil {
		utils.Error(c, http.StatusNotFound, "Sale not found", err)
		return
	}

	billNo := strings.ToUpper(utils.ShortID(sale.ID))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, config.Get().Store.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Invoice / Bill", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 6, "Bill No: "+billNo, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Date: "+sale.CreatedAt.Format("02 Jan 2006"), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, "Customer: "+sale.CustomerName, "", 0, "L", false, 0, "")
	phone := sale.Phone
	if phone == "" {
		phone = "-"
	}
	pdf.CellFormat(95, 6, "Phone: "+phone, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(10, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(90, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i, it := range sale.Items {
		pdf.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 7, it.Product.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("Rs. %.2f", it.PriceAtSale), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("Rs. %.2f", it.PriceAtSale*float64(it.Quantity)), "1", 1, "R", false, 0, "")
	}

	total := sale.Total()
	paid := sale.TotalPaid()

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(155, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("Rs. %.2f", total), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if len(sale.Payments) > 0 {
		for _, p := range sale.Payments {
			pdf.CellFormat(155, 7, "Paid ("+p.PaymentMode+")", "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 7, fmt.Sprintf("Rs. %.2f", p.Amount), "1", 1, "R", false, 0, "")
		}
	} else if paid > 0 {
		pdf.CellFormat(155, 7, "Paid ("+sale.PaymentMode+")", "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("Rs. %.2f", paid), "1", 1, "R", false, 0, "")
	}

	if paid > 0 && total-paid > models.UnderpaidThreshold {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(155, 8, "Due", "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("Rs. %.2f", total-paid), "1", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Thank you for your business!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to render bill", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bill-`+billNo+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
