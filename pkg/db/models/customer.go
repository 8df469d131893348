package models

// Customer is a client company. Names are unique within a tenant.
type Customer struct {
	Base

	Name          string `gorm:"column:name;not null" json:"name"`
	ContactPerson string `gorm:"column:contact_person;not null" json:"contactPerson"`
	Phone         string `gorm:"column:phone;not null;default:''" json:"phone"`
	Email         string `gorm:"column:email;not null;default:''" json:"email"`
	Address       string `gorm:"column:address;not null;default:''" json:"address"`
}

func (Customer) TableName() string {
	return "customers"
}
