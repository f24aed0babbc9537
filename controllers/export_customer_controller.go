package controllers

import (
	"encoding/csv"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/models"
	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExportCustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type ExportCustomerUpdateInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

type ExportCustomerView struct {
	models.ExportCustomer
	Balance      float64 `json:"balance"`
	BalanceLabel string  `json:"balance_label"`
	EntryCount   int     `json:"entry_count"`
	TotalBought  float64 `json:"total_bought"`
}

// GetAllExportCustomers lists every export buyer with their khata balance.
// Before listing, any buyer phone that appears on entries but has no
// profile yet gets one, so old entries surface in the khata too.
func GetAllExportCustomers(c *gin.Context) {
	if err := syncExportCustomerProfiles(config.DB); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to sync export customers", err)
		return
	}

	var customers []models.ExportCustomer
	if err := config.DB.Order("name ASC").Find(&customers).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch export customers", err)
		return
	}

	var txns []models.ExportCustomerTransaction
	if err := config.DB.Find(&txns).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch transactions", err)
		return
	}
	txnsByCustomer := map[uint][]models.ExportCustomerTransaction{}
	for _, t := range txns {
		txnsByCustomer[t.CustomerID] = append(txnsByCustomer[t.CustomerID], t)
	}

	var entries []models.ExportEntry
	if err := config.DB.Find(&entries).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch export entries", err)
		return
	}
	entryCount := map[string]int{}
	bought := map[string]float64{}
	for _, e := range entries {
		entryCount[e.BuyerPhone]++
		bought[e.BuyerPhone] += e.TotalAmount
	}

	var (
		views            []ExportCustomerView
		totalAdvanceHeld float64
		totalUdharOwed   float64
	)
	for _, cust := range customers {
		bal := models.ExportCustomerBalance(txnsByCustomer[cust.ID])
		if bal >= 0 {
			totalAdvanceHeld += bal
		} else {
			totalUdharOwed += -bal
		}
		views = append(views, ExportCustomerView{
			ExportCustomer: cust,
			Balance:        bal,
			BalanceLabel:   models.BalanceLabel(bal),
			EntryCount:     entryCount[cust.Phone],
			TotalBought:    bought[cust.Phone],
		})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].TotalBought > views[j].TotalBought
	})

	utils.Success(c, "Export customers fetched successfully", gin.H{
		"customers":          views,
		"total_advance_held": totalAdvanceHeld,
		"total_udhar_owed":   totalUdharOwed,
	})
}

func syncExportCustomerProfiles(db *gorm.DB) error {
	var entries []models.ExportEntry
	if err := db.Order("created_at ASC").Find(&entries).Error; err != nil {
		return err
	}

	var existing []models.ExportCustomer
	if err := db.Find(&existing).Error; err != nil {
		return err
	}
	known := map[string]bool{}
	for _, cust := range existing {
		known[cust.Phone] = true
	}

	// later entries overwrite the name, so each missing profile gets the
	// most recent buyer name
	missing := map[string]string{}
	for _, e := range entries {
		if !utils.ValidPhone(e.BuyerPhone) || known[e.BuyerPhone] {
			continue
		}
		missing[e.BuyerPhone] = e.BuyerName
	}

	for phone, name := range missing {
		cust := models.ExportCustomer{Phone: phone, Name: name}
		if err := db.Create(&cust).Error; err != nil {
			return err
		}
	}
	return nil
}

func CreateExportCustomer(c *gin.Context) {
	var in ExportCustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	if !utils.ValidPhone(in.Phone) {
		utils.Error(c, http.StatusBadRequest, "Phone number must be exactly 10 digits", nil)
		return
	}
	if in.Email != "" && !utils.ValidEmail(in.Email) {
		utils.Error(c, http.StatusBadRequest, "Invalid email address", nil)
		return
	}

	customer := models.ExportCustomer{
		Phone:   in.Phone,
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
		Notes:   in.Notes,
	}
	if err := config.DB.Create(&customer).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
		return
	}
	utils.Success(c, "Export customer created successfully", customer)
}

func UpdateExportCustomer(c *gin.Context) {
	var customer models.ExportCustomer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Export customer not found", err)
		return
	}

	var in ExportCustomerUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		if *in.Email != "" && !utils.ValidEmail(*in.Email) {
			utils.Error(c, http.StatusBadRequest, "Invalid email address", nil)
			return
		}
		updates["email"] = *in.Email
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&customer).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
			return
		}
	}
	utils.Success(c, "Export customer updated successfully", customer)
}

func GetExportCustomerTransactions(c *gin.Context) {
	var customer models.ExportCustomer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Export customer not found", err)
		return
	}

	var txns []models.ExportCustomerTransaction
	err := config.DB.Where("customer_id = ?", customer.ID).
		Order("transaction_date DESC").Find(&txns).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch transactions", err)
		return
	}

	balance := models.ExportCustomerBalance(txns)
	utils.Success(c, "Transactions fetched successfully", gin.H{
		"transactions":  txns,
		"balance":       balance,
		"balance_label": models.BalanceLabel(balance),
	})
}

func CreateExportCustomerTransaction(c *gin.Context) {
	var customer models.ExportCustomer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Export customer not found", err)
		return
	}

	var in TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	dir, err := models.NormalizeLedgerType(in.Type)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	txn := models.ExportCustomerTransaction{
		CustomerID:      customer.ID,
		Direction:       dir,
		Type:            in.Type,
		Amount:          in.Amount,
		Description:     in.Description,
		TransactionDate: time.Now().UTC(),
	}
	if err := config.DB.Create(&txn).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
		return
	}

	balance, _ := exportCustomerBalanceTx(config.DB, customer.ID)
	utils.Success(c, "Transaction added successfully", gin.H{
		"transaction":   txn,
		"balance":       balance,
		"balance_label": models.BalanceLabel(balance),
	})
}

func UpdateExportCustomerTransaction(c *gin.Context) {
	var txn models.ExportCustomerTransaction
	err := config.DB.Where("customer_id = ?", c.Param("id")).
		First(&txn, c.Param("txnId")).Error
	if err != nil {
		utils.Error(c, http.StatusNotFound, "Transaction not found", err)
		return
	}

	var in TransactionUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	updates := map[string]any{}
	if in.Type != nil {
		dir, err := models.NormalizeLedgerType(*in.Type)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		updates["type"] = *in.Type
		updates["direction"] = dir
	}
	if in.Amount != nil {
		if *in.Amount <= 0 {
			utils.Error(c, http.StatusBadRequest, "Amount must be greater than zero", nil)
			return
		}
		updates["amount"] = *in.Amount
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&txn).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
			return
		}
	}

	balance, _ := exportCustomerBalanceTx(config.DB, txn.CustomerID)
	utils.Success(c, "Transaction updated successfully", gin.H{
		"transaction":   txn,
		"balance":       balance,
		"balance_label": models.BalanceLabel(balance),
	})
}

func DeleteExportCustomerTransaction(c *gin.Context) {
	var txn models.ExportCustomerTransaction
	err := config.DB.Where("customer_id = ?", c.Param("id")).
		First(&txn, c.Param("txnId")).Error
	if err != nil {
		utils.Error(c, http.StatusNotFound, "Transaction not found", err)
		return
	}

	if err := config.DB.Delete(&txn).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to delete transaction", err)
		return
	}

	balance, _ := exportCustomerBalanceTx(config.DB, txn.CustomerID)
	utils.Success(c, "Transaction deleted successfully", gin.H{
		"id":            txn.ID,
		"balance":       balance,
		"balance_label": models.BalanceLabel(balance),
	})
}

func ExportCustomersCSVDownload(c *gin.Context) {
	var customers []models.ExportCustomer
	if err := config.DB.Order("name ASC").Find(&customers).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch export customers", err)
		return
	}

	var txns []models.ExportCustomerTransaction
	config.DB.Find(&txns)
	byCustomer := map[uint][]models.ExportCustomerTransaction{}
	for _, t := range txns {
		byCustomer[t.CustomerID] = append(byCustomer[t.CustomerID], t)
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="export-customers-`+time.Now().Format("2006-01-02")+`.csv"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{"Name", "Phone", "Email", "Address", "Balance", "Balance Type"})
	for _, cust := range customers {
		bal := models.ExportCustomerBalance(byCustomer[cust.ID])
		w.Write([]string{
			cust.Name,
			cust.Phone,
			cust.Email,
			cust.Address,
			strconv.FormatFloat(bal, 'f', 2, 64),
			models.BalanceLabel(bal),
		})
	}
}
