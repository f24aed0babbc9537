package controllers

import (
	"encoding/csv"
	"errors"
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

// autoVIPThreshold promotes a customer to VIP once lifetime spend crosses it.
const autoVIPThreshold = 10000.0

// CustomerSummary is the merged view the khata page shows: the saved
// profile (if any) folded together with every sale made under the phone.
type CustomerSummary struct {
	Phone           string  `json:"phone"`
	ProfileID       *uint   `json:"profile_id,omitempty"`
	CustomerName    string  `json:"customer_name"`
	Email           string  `json:"email"`
	AadhaarNumber   string  `json:"aadhaar_number"`
	AadhaarPhotoURL string  `json:"aadhaar_photo_url"`
	Address         string  `json:"address"`
	Notes           string  `json:"notes"`
	Rating          float64 `json:"rating"`
	IsVIP           bool    `json:"is_vip"`
	IsBanned        bool    `json:"is_banned"`

	TotalSpent     float64    `json:"total_spent"`
	TotalPurchases int        `json:"total_purchases"`
	LastOrderDate  *time.Time `json:"last_order_date"`

	Badges        []string      `json:"badges"`
	FavoriteItems []string      `json:"favorite_items"`
	Purchases     []models.Sale `json:"purchases"`
}

type ActivityEntry struct {
	SaleID uint      `json:"sale_id"`
	User   string    `json:"user"`
	Action string    `json:"action"`
	Amount float64   `json:"amount"`
	Time   time.Time `json:"time"`
}

type CustomerInput struct {
	Name            string  `json:"name" binding:"required"`
	Phone           string  `json:"phone" binding:"required"`
	Email           string  `json:"email"`
	AadhaarNumber   string  `json:"aadhaar_number"`
	AadhaarPhotoURL string  `json:"aadhaar_photo_url"`
	Address         string  `json:"address"`
	Notes           string  `json:"notes"`
	Rating          float64 `json:"rating"`
}

type CustomerUpdateInput struct {
	Name            *string  `json:"name"`
	Email           *string  `json:"email"`
	AadhaarNumber   *string  `json:"aadhaar_number"`
	AadhaarPhotoURL *string  `json:"aadhaar_photo_url"`
	Address         *string  `json:"address"`
	Notes           *string  `json:"notes"`
	Rating          *float64 `json:"rating"`
	IsVIP           *bool    `json:"is_vip"`
}

type BlockCustomerInput struct {
	Phone    string `json:"phone" binding:"required"`
	Name     string `json:"name"`
	IsBanned bool   `json:"is_banned"`
}

// GetAllCustomers groups sales by phone, merges saved profiles on top, and
// derives badges and favourites. Customers without a saved profile still
// show up as long as they bought something with a 10-digit phone.
func GetAllCustomers(c *gin.Context) {
	var sales []models.Sale
	err := config.DB.Preload("Items.Product").Preload("Payments").
		Order("created_at DESC").Find(&sales).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch sales", err)
		return
	}

	var profiles []models.Customer
	if err := config.DB.Find(&profiles).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch customers", err)
		return
	}

	byPhone := map[string]*CustomerSummary{}
	for i := range profiles {
		p := profiles[i]
		id := p.ID
		byPhone[p.Phone] = &CustomerSummary{
			Phone:           p.Phone,
			ProfileID:       &id,
			CustomerName:    p.Name,
			Email:           p.Email,
			AadhaarNumber:   p.AadhaarNumber,
			AadhaarPhotoURL: p.AadhaarPhotoURL,
			Address:         p.Address,
			Notes:           p.Notes,
			Rating:          p.Rating,
			IsVIP:           p.IsVIP,
			IsBanned:        p.IsBanned,
		}
	}

	itemQty := map[string]map[string]int{}
	for i := range sales {
		s := sales[i]
		if !utils.ValidPhone(s.Phone) {
			continue
		}
		cs, ok := byPhone[s.Phone]
		if !ok {
			cs = &CustomerSummary{Phone: s.Phone, CustomerName: s.CustomerName, Rating: 5}
			byPhone[s.Phone] = cs
		}
		if cs.CustomerName == "" {
			cs.CustomerName = s.CustomerName
		}
		cs.TotalSpent += s.Total()
		cs.TotalPurchases++
		if cs.LastOrderDate == nil || s.CreatedAt.After(*cs.LastOrderDate) {
			t := s.CreatedAt
			cs.LastOrderDate = &t
		}
		cs.Purchases = append(cs.Purchases, s)

		if itemQty[s.Phone] == nil {
			itemQty[s.Phone] = map[string]int{}
		}
		for _, it := range s.Items {
			itemQty[s.Phone][it.Product.Name] += it.Quantity
		}
	}

	customers := make([]CustomerSummary, 0, len(byPhone))
	for phone, cs := range byPhone {
		if cs.TotalSpent > autoVIPThreshold {
			cs.IsVIP = true
		}
		cs.Badges = customerBadges(cs)
		cs.FavoriteItems = topItems(itemQty[phone], 4)
		customers = append(customers, *cs)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].TotalSpent > customers[j].TotalSpent
	})

	activity := make([]ActivityEntry, 0, 10)
	for i := range sales {
		if len(activity) == 10 {
			break
		}
		s := sales[i]
		activity = append(activity, ActivityEntry{
			SaleID: s.ID,
			User:   s.CustomerName,
			Action: "made a purchase",
			Amount: s.Total(),
			Time:   s.CreatedAt,
		})
	}

	utils.Success(c, "Customers fetched successfully", gin.H{
		"customers":       customers,
		"recent_activity": activity,
	})
}

func customerBadges(cs *CustomerSummary) []string {
	if cs.IsBanned {
		return []string{"banned"}
	}
	badges := []string{}
	if cs.IsVIP {
		badges = append(badges, "vip")
	}
	if cs.TotalPurchases > 1 {
		badges = append(badges, "returning")
	} else {
		badges = append(badges, "new")
	}
	return badges
}

func topItems(qty map[string]int, n int) []string {
	type kv struct {
		name string
		qty  int
	}
	ranked := make([]kv, 0, len(qty))
	for name, q := range qty {
		ranked = append(ranked, kv{name, q})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].qty != ranked[j].qty {
			return ranked[i].qty > ranked[j].qty
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.name
	}
	return names
}

func CreateCustomer(c *gin.Context) {
	var in CustomerInput
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
	if in.AadhaarNumber != "" && !utils.ValidAadhaar(in.AadhaarNumber) {
		utils.Error(c, http.StatusBadRequest, "Aadhaar number must be exactly 12 digits if provided", nil)
		return
	}

	rating := in.Rating
	if rating == 0 {
		rating = 5
	}
	customer := models.Customer{
		Phone:           in.Phone,
		Name:            in.Name,
		Email:           in.Email,
		AadhaarNumber:   in.AadhaarNumber,
		AadhaarPhotoURL: in.AadhaarPhotoURL,
		Address:         in.Address,
		Notes:           in.Notes,
		Rating:          rating,
	}
	if err := config.DB.Create(&customer).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
		return
	}
	utils.Success(c, "Customer created successfully", customer)
}

func GetCustomerByID(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Customer not found", err)
		return
	}

	var txns []models.CustomerTransaction
	config.DB.Where("customer_id = ?", customer.ID).
		Order("transaction_date DESC").Find(&txns)

	balance := models.CustomerBalance(txns)
	utils.Success(c, "Customer fetched successfully", gin.H{
		"customer":      customer,
		"transactions":  txns,
		"balance":       balance,
		"balance_label": models.BalanceLabel(balance),
	})
}

func UpdateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Customer not found", err)
		return
	}

	var in CustomerUpdateInput
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
	if in.AadhaarNumber != nil {
		if *in.AadhaarNumber != "" && !utils.ValidAadhaar(*in.AadhaarNumber) {
			utils.Error(c, http.StatusBadRequest, "Aadhaar number must be exactly 12 digits if provided", nil)
			return
		}
		updates["aadhaar_number"] = *in.AadhaarNumber
	}
	if in.AadhaarPhotoURL != nil {
		updates["aadhaar_photo_url"] = *in.AadhaarPhotoURL
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if in.Rating != nil {
		updates["rating"] = *in.Rating
	}
	if in.IsVIP != nil {
		updates["is_vip"] = *in.IsVIP
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&customer).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
			return
		}
	}
	utils.Success(c, "Customer updated successfully", customer)
}

// BanCustomer and UnbanCustomer flip the flag on an existing profile.
func BanCustomer(c *gin.Context) {
	setCustomerBanned(c, true, "Customer banned successfully")
}

func UnbanCustomer(c *gin.Context) {
	setCustomerBanned(c, false, "Customer unbanned successfully")
}

func setCustomerBanned(c *gin.Context, banned bool, msg string) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Customer not found", err)
		return
	}
	if err := config.DB.Model(&customer).Update("is_banned", banned).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update customer", err)
		return
	}
	utils.Success(c, msg, customer)
}

// BlockCustomer flips the banned flag by phone, creating the profile on the
// fly when the customer only exists as grouped sales.
func BlockCustomer(c *gin.Context) {
	var in BlockCustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	if !utils.ValidPhone(in.Phone) {
		utils.Error(c, http.StatusBadRequest, "Phone number must be exactly 10 digits", nil)
		return
	}

	var customer models.Customer
	err := config.DB.Where("phone = ?", in.Phone).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		name := in.Name
		if name == "" {
			name = walkInCustomer
		}
		customer = models.Customer{Phone: in.Phone, Name: name, IsBanned: in.IsBanned, Rating: 5}
		err = config.DB.Create(&customer).Error
	} else if err == nil {
		err = config.DB.Model(&customer).Update("is_banned", in.IsBanned).Error
	}
	if err != nil {
		utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
		return
	}

	msg := "Customer unblocked successfully"
	if in.IsBanned {
		msg = "Customer blocked successfully"
	}
	utils.Success(c, msg, customer)
}

func ExportCustomersCSV(c *gin.Context) {
	var profiles []models.Customer
	if err := config.DB.Order("name ASC").Find(&profiles).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch customers", err)
		return
	}

	var txns []models.CustomerTransaction
	config.DB.Find(&txns)
	byCustomer := map[uint][]models.CustomerTransaction{}
	for _, t := range txns {
		byCustomer[t.CustomerID] = append(byCustomer[t.CustomerID], t)
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="customers-`+time.Now().Format("2006-01-02")+`.csv"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{"Name", "Phone", "Email", "Address", "Balance", "Balance Type", "Status", "Rating"})
	for _, p := range profiles {
		bal := models.CustomerBalance(byCustomer[p.ID])
		status := "active"
		if p.IsBanned {
			status = "banned"
		}
		w.Write([]string{
			p.Name,
			p.Phone,
			p.Email,
			p.Address,
			strconv.FormatFloat(bal, 'f', 2, 64),
			models.BalanceLabel(bal),
			status,
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
		})
	}
}
