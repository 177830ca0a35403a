package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. Anything other than StatusSuccess is treated as a
// recorded payment failure.
const (
	StatusSuccess  = "success"
	StatusDeclined = "declined"
	StatusError    = "error"
)

// Ledger entry kinds.
const (
	KindDebit  = "debit"
	KindCredit = "credit"
)

// Color is one selectable product variant.
type Color struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	ColorClass string `json:"colorClass"`
}

type Product struct {
	gorm.Model
	Name          string          `gorm:"size:100;not null" json:"name"`
	Description   string          `gorm:"size:2000;not null" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(20,2)" json:"originalPrice"`
	Images        []string        `gorm:"serializer:json" json:"images"`
	Highlights    []string        `gorm:"serializer:json" json:"highlights"`
	Colors        []Color         `gorm:"serializer:json" json:"colors"`
	Sizes         []string        `gorm:"serializer:json" json:"sizes"`
	Tags          []string        `gorm:"serializer:json" json:"tags"`
	Inventory     int             `gorm:"not null" json:"inventory"`
}

type User struct {
	gorm.Model
	Name     string          `gorm:"size:50;not null" json:"name"`
	Email    string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string          `gorm:"size:255" json:"-"`
	Wallet   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"wallet"`

	Transactions []LedgerEntry `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}

// LedgerEntry is an append-only record of a balance-affecting event.
// The user's Wallet field is a cached projection of these entries on top
// of the opening credit.
type LedgerEntry struct {
	gorm.Model
	UserID      uint            `gorm:"index;not null" json:"-"`
	OrderID     *uint           `gorm:"index" json:"orderId,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Kind        string          `gorm:"size:10;not null" json:"type"`
	Description string          `gorm:"size:255;not null" json:"description"`
}

// CustomerInfo is the shipping snapshot captured at order time,
// independent of any later profile change.
type CustomerInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
}

// ProductSnapshot is a copy of the product as purchased, embedded
// immutably in the order. Price and name reflect what the buyer paid,
// not the live catalog row.
type ProductSnapshot struct {
	ProductID uint            `json:"_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

type Order struct {
	gorm.Model
	UserID       uint            `gorm:"index;not null" json:"userId"`
	OrderNumber  string          `gorm:"uniqueIndex;size:40;not null" json:"orderNumber"`
	CustomerInfo CustomerInfo    `gorm:"serializer:json" json:"customerInfo"`
	Product      ProductSnapshot `gorm:"serializer:json" json:"product"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"totalAmount"`
	Status       string          `gorm:"size:20;index;not null" json:"status"`
}
