package models

// Product is a registered product specification. Names are unique within a
// tenant.
type Product struct {
	Base

	Name           string  `gorm:"column:name;not null" json:"name"`
	Content        string  `gorm:"column:content;not null;default:''" json:"content"`
	CostPrice      float64 `gorm:"column:cost_price;not null" json:"costPrice"`
	SellingPrice   float64 `gorm:"column:selling_price;not null" json:"sellingPrice"`
	Quantity       int     `gorm:"column:quantity;not null;default:0" json:"quantity"`
	SerialPrefix   string  `gorm:"column:serial_prefix;not null;default:''" json:"serialPrefix"`
	ExpirationDate string  `gorm:"column:expiration_date;not null" json:"expirationDate"`
}

func (Product) TableName() string {
	return "products"
}
