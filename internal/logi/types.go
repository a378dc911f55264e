package logi

import (
	"strings"

	"github.com/shopspring/decimal"
)

// VehicleCategory is the kind of vehicle as stored in vehicles.category.
type VehicleCategory string

const (
	VehicleCar        VehicleCategory = "car"
	VehicleMotorcycle VehicleCategory = "motorcycle"
	VehicleVan        VehicleCategory = "van"
	VehicleTruck      VehicleCategory = "truck"
)

// VehicleCategories lists categories in menu order.
var VehicleCategories = []VehicleCategory{VehicleCar, VehicleMotorcycle, VehicleVan, VehicleTruck}

// VehicleStatus is the availability of a vehicle.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleUnavailable VehicleStatus = "unavailable"
)

var VehicleStatuses = []VehicleStatus{VehicleAvailable, VehicleUnavailable}

// DeliveryStatus is the lifecycle state of a product.
type DeliveryStatus string

const (
	StatusProcessing     DeliveryStatus = "processing"
	StatusAwaitingPickup DeliveryStatus = "awaiting_pickup"
	StatusInTransit      DeliveryStatus = "in_transit"
	StatusDelivered      DeliveryStatus = "delivered"
	StatusCancelled      DeliveryStatus = "cancelled"
	StatusDeliveryFailed DeliveryStatus = "delivery_failed"
)

var DeliveryStatuses = []DeliveryStatus{
	StatusProcessing,
	StatusAwaitingPickup,
	StatusInTransit,
	StatusDelivered,
	StatusCancelled,
	StatusDeliveryFailed,
}

// Loadable reports whether a product in this status may be added to a load.
func (s DeliveryStatus) Loadable() bool {
	return s == StatusProcessing || s == StatusAwaitingPickup
}

// ProductCategory is the handling class of a product.
type ProductCategory string

const (
	ProductFragile    ProductCategory = "fragile"
	ProductPerishable ProductCategory = "perishable"
	ProductStandard   ProductCategory = "standard"
)

var ProductCategories = []ProductCategory{ProductFragile, ProductPerishable, ProductStandard}

// ClientKind distinguishes individual clients (CPF) from companies (CNPJ).
type ClientKind string

const (
	ClientIndividual ClientKind = "individual"
	ClientCompany    ClientKind = "company"
)

// Role determines which menus a user can reach.
type Role string

const (
	RoleAdmin              Role = "admin"
	RoleManager            Role = "manager"
	RoleAttendant          Role = "attendant"
	RoleDriver             Role = "driver"
	RoleLogisticsAssistant Role = "logistics_assistant"
	RoleClient             Role = "client"
)

var Roles = []Role{RoleAdmin, RoleManager, RoleAttendant, RoleDriver, RoleLogisticsAssistant, RoleClient}

// PositionDriver is the employee position that may be assigned to products
// and vehicles.
const PositionDriver = "driver"

// Label returns a human-readable form of an enum value, e.g.
// "awaiting_pickup" becomes "Awaiting Pickup".
func Label[T ~string](v T) string {
	words := strings.Split(string(v), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ParseEnum matches raw against allowed, ignoring case and treating spaces
// and underscores alike.
func ParseEnum[T ~string](raw string, allowed []T) (T, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
	for _, v := range allowed {
		if string(v) == norm {
			return v, nil
		}
	}
	var zero T
	return zero, invalidInput("unknown value %q", raw)
}

// ParseKg parses a strictly positive weight or capacity in kilograms.
func ParseKg(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."))
	if err != nil {
		return decimal.Zero, invalidInput("not a number: %q", raw)
	}
	if !d.IsPositive() {
		return decimal.Zero, invalidInput("must be greater than zero: %s", d.String())
	}
	return d, nil
}

// FormatKg renders a kilogram amount with at least one decimal place.
func FormatKg(d decimal.Decimal) string {
	if d.Equal(d.Round(1)) {
		return d.StringFixed(1)
	}
	return d.String()
}

// FormatPlate normalizes a licence plate for storage and lookup.
func FormatPlate(raw string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", ""))
}

func (c VehicleCategory) String() string { return Label(c) }
func (s VehicleStatus) String() string   { return Label(s) }
func (s DeliveryStatus) String() string  { return Label(s) }
func (c ProductCategory) String() string { return Label(c) }
func (r Role) String() string            { return Label(r) }
