package entity

import "time"

// CompanySettings datos de la empresa usados en encabezados de recibos y reportes (registro único).
type CompanySettings struct {
	CompanyName string
	Address     string
	Phone       string
	Email       string
	TaxNumber   string
	UpdatedAt   time.Time
}
