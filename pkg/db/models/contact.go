package models

// Contact is an internal contact person. Contacts carry no uniqueness
// constraint.
type Contact struct {
	Base

	Name       string `gorm:"column:name;not null" json:"name"`
	Department string `gorm:"column:department;not null" json:"department"`
	Phone      string `gorm:"column:phone;not null;default:''" json:"phone"`
	Email      string `gorm:"column:email;not null;default:''" json:"email"`
}

func (Contact) TableName() string {
	return "contacts"
}
