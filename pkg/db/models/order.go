package models

// Order is a product order. Serial numbers are unique within a tenant. The
// start/end dates arrive as calendar-date strings from the frontend and are
// stored verbatim.
type Order struct {
	Base

	ProductName  string  `gorm:"column:product_name;not null" json:"productName"`
	SerialNumber string  `gorm:"column:serial_number;not null" json:"serialNumber"`
	UnitPrice    float64 `gorm:"column:unit_price;not null" json:"unitPrice"`
	Quantity     int     `gorm:"column:quantity;not null" json:"quantity"`
	StartDate    string  `gorm:"column:start_date;not null" json:"startDate"`
	EndDate      string  `gorm:"column:end_date;not null" json:"endDate"`
	CustomerName string  `gorm:"column:customer_name;not null;default:''" json:"customerName"`
}

func (Order) TableName() string {
	return "orders"
}
