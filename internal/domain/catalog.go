package domain

import "errors"

// ErrServiceNotFound indicates that the service code is not in the catalog.
var ErrServiceNotFound = errors.New("service not found")

// Service is a payable catalog item with a flat tariff.
type Service struct {
	ID     int64  `json:"-"`
	Code   string `json:"service_code"`
	Name   string `json:"service_name"`
	Icon   string `json:"service_icon"`
	Tariff int64  `json:"service_tariff"`
	Active bool   `json:"-"`
}

// Banner is a promotional banner shown by the client.
type Banner struct {
	Name        string `json:"banner_name"`
	Image       string `json:"banner_image"`
	Description string `json:"description"`
}
