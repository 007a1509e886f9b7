// Package model holds the value types shared by every provider: cities,
// addresses, waste fractions, pickup events and date ranges.
package model

// CityID is the stable slug identifying a supported city.
type CityID string

func (id CityID) String() string { return string(id) }

// Well-known city slugs.
const (
	Aachen    CityID = "aachen"
	Cologne   CityID = "cologne"
	Nuremberg CityID = "nuremberg"
)

// CityMeta describes a city and its display name.
type CityMeta struct {
	ID   CityID `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// AddressID is an opaque handle issued by a provider. Only the provider that
// produced it can interpret it.
type AddressID string

func (id AddressID) String() string { return string(id) }

// Address is a resolvable pickup location.
type Address struct {
	ID          AddressID `json:"id" yaml:"id"`
	City        CityID    `json:"city" yaml:"city"`
	Label       string    `json:"label" yaml:"label"`
	Street      string    `json:"street" yaml:"street"`
	HouseNumber string    `json:"house_number" yaml:"house_number"`
}
