package controllers

import (
	"net/http"
	"time"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/models"
	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
)

type TransactionInput struct {
	Type        string  `json:"type" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
}

type TransactionUpdateInput struct {
	Type        *string  `json:"type"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
}

func GetCustomerTransactions(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Customer not found", err)
		return
	}

	var txns []models.CustomerTransaction
	err := config.DB.Where("customer_id = ?", customer.ID).
		Order("transaction_date DESC").Find(&txns).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch transactions", err)
		return
	}

	balance := models.CustomerBalance(txns)
	utils.Success(c, "Transactions fetched successfully", gin.H{
		"transactions":  txns,
		"balance":       balance,
		"balance_label": models.BalanceLabel(balance),
	})
}

// CreateCustomerTransaction records a manual khata entry. The legacy label
// is kept for display but the row always carries its canonical direction,
// so the balance fold never has to know about label synonyms.
func CreateCustomerTransaction(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Customer not found", err)
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

	txn := models.CustomerTransaction{
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

	balance, _ := customerBalanceTx(config.DB, customer.ID)
	utils.Success(c, "Transaction added successfully", gin.H{
		"transaction":   txn,
		"balance":       balance,
		"balance_label": models.BalanceLabel(balance),
	})
}

// UpdateCustomerTransaction edits kind, amount, or description in place.
// The original TransactionDate is never touched and the balance is simply
// refolded from current rows, so an edit is equivalent to delete-and-readd.
func UpdateCustomerTransaction(c *gin.Context) {
	var txn models.CustomerTransaction
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

	balance, _ := customerBalanceTx(config.DB, txn.CustomerID)
	utils.Success(c, "Transaction updated successfully", gin.H{
		"transaction":   txn,
		"balance":       balance,
		"balance_label": models.BalanceLabel(balance),
	})
}

func DeleteCustomerTransaction(c *gin.Context) {
	var txn models.CustomerTransaction
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

	balance, _ := customerBalanceTx(config.DB, txn.CustomerID)
	utils.Success(c, "Transaction deleted successfully", gin.H{
		"id":            txn.ID,
		"balance":       balance,
		"balance_label": models.BalanceLabel(balance),
	})
}

func GetCustomerBalance(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Customer not found", err)
		return
	}

	balance, err := customerBalanceTx(config.DB, customer.ID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to compute balance", err)
		return
	}
	utils.Success(c, "Balance fetched successfully", gin.H{
		"balance":       balance,
		"balance_label": models.BalanceLabel(balance),
	})
}
