// Package customer holds the ordering party's profile.
package customer

// Profile carries the defaults used to open a new order.
type Profile struct {
	ID                     int64
	Name                   string
	DefaultShippingAddress string
	DefaultPONumber        string
}

// FrequentItem is the product a customer ordered most often in a recent window.
type FrequentItem struct {
	ProductID string
	Name      string
	Count     int
}
