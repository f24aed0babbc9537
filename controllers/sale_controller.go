package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/models"
	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const walkInCustomer = "Walk-in Customer"

type SalePaymentInput struct {
	Mode   string  `json:"mode"`
	Amount float64 `json:"amount"`
}

type SaleItemInput struct {
	ProductID   uint     `json:"product_id" binding:"required"`
	Quantity    int      `json:"quantity" binding:"required,gt=0"`
	CustomPrice *float64 `json:"custom_price"`
}

type SaleInput struct {
	CustomerName    string             `json:"customer_name"`
	Phone           string             `json:"phone"`
	AadhaarNumber   string             `json:"aadhaar_number"`
	AadhaarPhotoURL string             `json:"aadhaar_photo_url"`
	Notes           string             `json:"notes"`
	CustomFields    map[string]string  `json:"custom_fields"`
	Payments        []SalePaymentInput `json:"payments"`
	Items           []SaleItemInput    `json:"items" binding:"required,min=1"`
}

func GetAllSales(c *gin.Context) {
	q := config.DB.Model(&models.Sale{}).
		Preload("Items.Product").
		Preload("Payments")

	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("customer_name ILIKE ? OR phone LIKE ?", like, like)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}
	if c.Query("sort") == "asc" {
		q = q.Order("created_at ASC")
	} else {
		q = q.Order("created_at DESC")
	}

	var sales []models.Sale
	if err := q.Find(&sales).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch sales", err)
		return
	}
	utils.Success(c, "Sales fetched successfully", sales)
}

func GetSaleByID(c *gin.Context) {
	var sale models.Sale
	err := config.DB.Preload("Items.Product").Preload("Payments").
		First(&sale, c.Param("id")).Error
	if err != nil {
		utils.Error(c, http.StatusNotFound, "Sale not found", err)
		return
	}
	utils.Success(c, "Sale fetched successfully", sale)
}

// CreateSale writes the whole sale in one transaction: customer upsert,
// stock deduction per item, header + payments + items, and the auto-udhar
// settlement when the customer under-pays. Either everything lands or
// nothing does.
func CreateSale(c *gin.Context) {
	var in SaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	if in.Phone != "" && !utils.ValidPhone(in.Phone) {
		utils.Error(c, http.StatusBadRequest, "Phone number must be exactly 10 digits if provided", nil)
		return
	}
	if in.AadhaarNumber != "" && !utils.ValidAadhaar(in.AadhaarNumber) {
		utils.Error(c, http.StatusBadRequest, "Aadhaar number must be exactly 12 digits if provided", nil)
		return
	}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		name = walkInCustomer
	}

	var (
		created         models.Sale
		customerCreated bool
	)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var customerID uint
		if utils.ValidPhone(in.Phone) {
			id, isNew, err := upsertCustomerForSale(tx, in, name)
			if err != nil {
				return err
			}
			customerID = id
			customerCreated = isNew
		}

		var (
			items []models.SaleItem
			total float64
		)
		for _, it := range in.Items {
			p, err := deductStock(tx, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			price := p.UnitPrice
			if it.CustomPrice != nil && *it.CustomPrice > 0 {
				price = *it.CustomPrice
			}
			items = append(items, models.SaleItem{
				ProductID:   p.ID,
				Quantity:    it.Quantity,
				PriceAtSale: price,
			})
			total += price * float64(it.Quantity)
		}

		var (
			payments  []models.SalePayment
			totalPaid float64
		)
		primaryMode := "cash"
		if len(in.Payments) > 0 && in.Payments[0].Mode != "" {
			primaryMode = in.Payments[0].Mode
		}
		for _, p := range in.Payments {
			if p.Amount <= 0 {
				continue
			}
			mode := p.Mode
			if mode == "" {
				mode = "cash"
			}
			payments = append(payments, models.SalePayment{PaymentMode: mode, Amount: p.Amount})
			totalPaid += p.Amount
		}

		sale := models.Sale{
			CustomerName:    name,
			Phone:           in.Phone,
			AadhaarNumber:   in.AadhaarNumber,
			AadhaarPhotoURL: in.AadhaarPhotoURL,
			Notes:           in.Notes,
			CustomFields:    models.JSONMap(in.CustomFields),
			PaymentMode:     primaryMode,
			AmountPaid:      totalPaid,
			Items:           items,
			Payments:        payments,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		created = sale

		if customerID != 0 {
			return settleSaleUnderpayment(tx, customerID, sale.ID, total-totalPaid)
		}
		return nil
	})
	if err != nil {
		utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
		return
	}

	config.DB.Preload("Items.Product").Preload("Payments").First(&created, created.ID)

	msg := "Sale created successfully!"
	if customerCreated {
		msg = "Sale created & new customer added successfully!"
	}
	utils.Success(c, msg, created)
}

// upsertCustomerForSale finds or creates the khata profile for the sale's
// phone. Aadhaar details only overwrite when the sale actually carries them.
func upsertCustomerForSale(tx *gorm.DB, in SaleInput, name string) (uint, bool, error) {
	var existing models.Customer
	err := tx.Where("phone = ?", in.Phone).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cust := models.Customer{
			Phone:           in.Phone,
			Name:            name,
			AadhaarNumber:   in.AadhaarNumber,
			AadhaarPhotoURL: in.AadhaarPhotoURL,
			Rating:          5,
		}
		if err := tx.Create(&cust).Error; err != nil {
			return 0, false, err
		}
		return cust.ID, true, nil
	}
	if err != nil {
		return 0, false, err
	}

	updates := map[string]any{"name": name}
	if in.AadhaarNumber != "" {
		updates["aadhaar_number"] = in.AadhaarNumber
	}
	if in.AadhaarPhotoURL != "" {
		updates["aadhaar_photo_url"] = in.AadhaarPhotoURL
	}
	if err := tx.Model(&existing).Updates(updates).Error; err != nil {
		return 0, false, err
	}
	return existing.ID, false, nil
}

// DeleteSale removes the sale with its items and payments. It does NOT
// restore stock and does NOT reverse any udhar row the sale created; the
// khata keeps its history and corrections are made as manual transactions.
func DeleteSale(c *gin.Context) {
	var sale models.Sale
	if err := config.DB.First(&sale, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Sale not found", err)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SalePayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sale).Error
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to delete sale", err)
		return
	}
	utils.Success(c, "Sale deleted successfully", gin.H{"id": sale.ID})
}

func ExportSalesCSV(c *gin.Context) {
	var sales []models.Sale
	err := config.DB.Preload("Items.Product").Preload("Payments").
		Order("created_at DESC").Find(&sales).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch sales", err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="sales-`+time.Now().Format("2006-01-02")+`.csv"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{"Date", "Customer", "Phone", "Items", "Total", "Paid", "Due", "Payment Mode"})
	for i := range sales {
		s := &sales[i]
		var parts []string
		for _, it := range s.Items {
			parts = append(parts, fmt.Sprintf("%s x%d", it.Product.Name, it.Quantity))
		}
		total := s.Total()
		paid := s.TotalPaid()
		w.Write([]string{
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.CustomerName,
			s.Phone,
			strings.Join(parts, "; "),
			strconv.FormatFloat(total, 'f', 2, 64),
			strconv.FormatFloat(paid, 'f', 2, 64),
			strconv.FormatFloat(total-paid, 'f', 2, 64),
			s.PaymentMode,
		})
	}
}
