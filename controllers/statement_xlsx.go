package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/models"
	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// DownloadCustomerStatement writes the customer's khata as an xlsx with a
// running balance column, oldest row first.
func DownloadCustomerStatement(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Customer not found", err)
		return
	}

	var txns []models.CustomerTransaction
	err := config.DB.Where("customer_id = ?", customer.ID).
		Order("transaction_date ASC, id ASC").Find(&txns).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch transactions", err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Statement"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", config.Get().Store.Name)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Statement for %s (%s)", customer.Name, customer.Phone))
	f.SetCellValue(sheet, "A3", "Generated: "+time.Now().Format("02 Jan 2006 15:04"))

	headers := []string{"Date", "Type", "Description", "Credit", "Debit", "Balance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(sheet, cell, h)
	}

	var balance float64
	row := 6
	for _, t := range txns {
		if t.Direction == models.Credit {
			balance += t.Amount
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), t.Amount)
		} else {
			balance -= t.Amount
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), t.Amount)
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), t.TransactionDate.Format("02 Jan 2006"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), t.Type)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), t.Description)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), balance)
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Closing balance")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), balance)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row+1), models.BalanceLabel(balance))

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "C", "C", 44)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="statement-`+customer.Phone+`.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to write statement", err)
	}
}
