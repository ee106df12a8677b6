package models

import "gorm.io/gorm"

// Customer is read by the ticket listing only
type Customer struct {
	ID        string         `gorm:"Column:id;type:varchar(36);primaryKey"`
	FirstName string         `gorm:"Column:nombre"`
	LastName  string         `gorm:"Column:apellidos"`
	Phone     string         `gorm:"Column:numero_celular"`
	DeletedAt gorm.DeletedAt `gorm:"Column:deleted_at;index"`
}

func (Customer) TableName() string { return "clientes" }

// Equipment is a customer device
type Equipment struct {
	ID           string `gorm:"Column:id;type:varchar(36);primaryKey"`
	CustomerID   string `gorm:"Column:cliente_id;type:varchar(36);index"`
	BrandID      int    `gorm:"Column:marca_id"`
	Model        string `gorm:"Column:modelo"`
	DeviceType   string `gorm:"Column:tipo_equipo"`
	SerialNumber string `gorm:"Column:numero_serie"`
}

func (Equipment) TableName() string { return "equipos" }

type Brand struct {
	ID   int    `gorm:"Column:id;primaryKey"`
	Name string `gorm:"Column:nombre_marca"`
}

func (Brand) TableName() string { return "marcas" }

type User struct {
	ID       string `gorm:"Column:id;type:varchar(36);primaryKey"`
	FullName string `gorm:"Column:nombre_completo"`
	Email    string `gorm:"Column:correo_electronico"`
	Type     string `gorm:"Column:tipo"`
}

func (User) TableName() string { return "users" }
