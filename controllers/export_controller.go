package controllers

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/models"
	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExportEntryInput struct {
	ExportItemKey string             `json:"export_item_key" binding:"required"`
	Quantity      float64            `json:"quantity" binding:"required,gt=0"`
	Unit          string             `json:"unit"`
	RatePerUnit   float64            `json:"rate_per_unit" binding:"required,gt=0"`
	Payments      []SalePaymentInput `json:"payments"`
	BuyerName     string             `json:"buyer_name"`
	BuyerPhone    string             `json:"buyer_phone"`
	VehicleNumber string             `json:"vehicle_number"`
	Notes         string             `json:"notes"`
	ExportDate    string             `json:"export_date"` // yyyy-mm-dd, defaults to today
}

type exportItemStats struct {
	models.ExportItem
	EntryCount    int     `json:"entry_count"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
}

// GetExportItems returns the fixed crop catalog with lifetime totals per item.
func GetExportItems(c *gin.Context) {
	var entries []models.ExportEntry
	if err := config.DB.Find(&entries).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch export entries", err)
		return
	}

	stats := make([]exportItemStats, len(models.ExportItems))
	index := map[string]int{}
	for i, it := range models.ExportItems {
		stats[i] = exportItemStats{ExportItem: it}
		index[it.Key] = i
	}
	for _, e := range entries {
		i, ok := index[e.ExportItemKey]
		if !ok {
			continue
		}
		stats[i].EntryCount++
		stats[i].TotalQuantity += e.Quantity
		stats[i].TotalAmount += e.TotalAmount
	}

	utils.Success(c, "Export items fetched successfully", stats)
}

func GetAllExportEntries(c *gin.Context) {
	q := config.DB.Model(&models.ExportEntry{})

	if item := c.Query("item"); item != "" {
		q = q.Where("export_item_key = ?", item)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("export_date >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("export_date < ?", t.AddDate(0, 0, 1))
		}
	}
	if c.Query("sort") == "asc" {
		q = q.Order("export_date ASC, id ASC")
	} else {
		q = q.Order("export_date DESC, id DESC")
	}

	var entries []models.ExportEntry
	if err := q.Find(&entries).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch export entries", err)
		return
	}
	utils.Success(c, "Export entries fetched successfully", entries)
}

// CreateExportEntry mirrors the sale flow for outgoing crops: total is
// always quantity × rate, the buyer profile is auto-created from the phone,
// and an under-payment settles into the export khata inside the same
// transaction.
func CreateExportEntry(c *gin.Context) {
	var in ExportEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	if !models.ValidExportItemKey(in.ExportItemKey) {
		utils.Error(c, http.StatusBadRequest, "Unknown export item", nil)
		return
	}
	if in.BuyerPhone != "" && !utils.ValidPhone(in.BuyerPhone) {
		utils.Error(c, http.StatusBadRequest, "Phone number must be exactly 10 digits if provided", nil)
		return
	}

	exportDate := time.Now().UTC()
	if in.ExportDate != "" {
		t, err := time.Parse("2006-01-02", in.ExportDate)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Export date must be yyyy-mm-dd", nil)
			return
		}
		exportDate = t
	}

	unit := in.Unit
	if unit == "" {
		unit = "kg"
	}

	var totalPaid float64
	validModes := 0
	firstMode := "cash"
	for _, p := range in.Payments {
		if p.Amount <= 0 {
			continue
		}
		if validModes == 0 && p.Mode != "" {
			firstMode = p.Mode
		}
		validModes++
		totalPaid += p.Amount
	}
	paymentMode := firstMode
	if validModes > 1 {
		paymentMode = "split"
	}

	total := in.Quantity * in.RatePerUnit

	var created models.ExportEntry
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var customerID uint
		if utils.ValidPhone(in.BuyerPhone) {
			id, err := upsertExportCustomer(tx, in.BuyerPhone, in.BuyerName)
			if err != nil {
				return err
			}
			customerID = id
		}

		entry := models.ExportEntry{
			ExportItemKey: in.ExportItemKey,
			Quantity:      in.Quantity,
			Unit:          unit,
			RatePerUnit:   in.RatePerUnit,
			TotalAmount:   total,
			AmountPaid:    totalPaid,
			PaymentMode:   paymentMode,
			BuyerName:     in.BuyerName,
			BuyerPhone:    in.BuyerPhone,
			VehicleNumber: in.VehicleNumber,
			Notes:         in.Notes,
			ExportDate:    exportDate,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		created = entry

		if customerID != 0 {
			return settleExportUnderpayment(tx, customerID, entry.ID, total-totalPaid)
		}
		return nil
	})
	if err != nil {
		utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
		return
	}

	utils.Success(c, "Export entry created successfully", created)
}

func upsertExportCustomer(tx *gorm.DB, phone, name string) (uint, error) {
	var existing models.ExportCustomer
	err := tx.Where("phone = ?", phone).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cust := models.ExportCustomer{Phone: phone, Name: name}
		if err := tx.Create(&cust).Error; err != nil {
			return 0, err
		}
		return cust.ID, nil
	}
	if err != nil {
		return 0, err
	}
	if name != "" && existing.Name != name {
		if err := tx.Model(&existing).Update("name", name).Error; err != nil {
			return 0, err
		}
	}
	return existing.ID, nil
}

// DeleteExportEntry removes the entry only. Like sales, any udhar row the
// entry created stays in the khata.
func DeleteExportEntry(c *gin.Context) {
	var entry models.ExportEntry
	if err := config.DB.First(&entry, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Export entry not found", err)
		return
	}
	if err := config.DB.Delete(&entry).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to delete export entry", err)
		return
	}
	utils.Success(c, "Export entry deleted successfully", gin.H{"id": entry.ID})
}

func ExportEntriesCSV(c *gin.Context) {
	var entries []models.ExportEntry
	err := config.DB.Order("export_date DESC, id DESC").Find(&entries).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch export entries", err)
		return
	}

	names := map[string]string{}
	for _, it := range models.ExportItems {
		names[it.Key] = it.Name
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="exports-`+time.Now().Format("2006-01-02")+`.csv"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{"Date", "Item", "Quantity", "Unit", "Rate", "Total", "Paid", "Due", "Payment Mode", "Buyer", "Phone", "Vehicle"})
	for _, e := range entries {
		name := names[e.ExportItemKey]
		if name == "" {
			name = e.ExportItemKey
		}
		w.Write([]string{
			e.ExportDate.Format("2006-01-02"),
			name,
			strconv.FormatFloat(e.Quantity, 'f', 2, 64),
			e.Unit,
			strconv.FormatFloat(e.RatePerUnit, 'f', 2, 64),
			strconv.FormatFloat(e.TotalAmount, 'f', 2, 64),
			strconv.FormatFloat(e.AmountPaid, 'f', 2, 64),
			strconv.FormatFloat(e.TotalAmount-e.AmountPaid, 'f', 2, 64),
			e.PaymentMode,
			e.BuyerName,
			e.BuyerPhone,
			e.VehicleNumber,
		})
	}
}
