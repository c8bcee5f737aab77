package domain

import "time"

type PropertyType string

const (
	PropertyTypeApartment PropertyType = "APARTMENT"
	PropertyTypeHouse     PropertyType = "HOUSE"
	PropertyTypeCondo     PropertyType = "CONDO"
	PropertyTypeTownhouse PropertyType = "TOWNHOUSE"
	PropertyTypeRoom      PropertyType = "ROOM"
)

type Listing struct {
	ID            int32        `json:"id"`
	LandlordID    int32        `json:"landlord_id"`
	Address       string       `json:"address"`
	City          string       `json:"city"`
	PropertyType  PropertyType `json:"property_type"`
	Bedrooms      int32        `json:"bedrooms"`
	Bathrooms     int32        `json:"bathrooms"`
	RentCents     int32        `json:"rent_cents"`
	DepositCents  int32        `json:"deposit_cents"`
	AvailableFrom time.Time    `json:"available_from"`
	Description   string       `json:"description"`
	DeletedOn     *time.Time   `json:"deleted_on,omitempty"`
	CreatedOn     time.Time    `json:"created_on"`
	UpdatedOn     time.Time    `json:"updated_on"`
}

type ListingImage struct {
	ID         int32     `json:"id"`
	ListingID  int32     `json:"listing_id"`
	StorageKey string    `json:"storage_key"`
	IsPrimary  bool      `json:"is_primary"`
	CreatedOn  time.Time `json:"created_on"`
}

// IsAvailable reports whether the listing is open for new applications.
// Availability is never stored; it is recomputed from the live application
// and lease rows on every read.
//
// A listing is closed as soon as any application references it, whatever
// that application's status: a REJECTED application keeps the slot hidden
// until the landlord explicitly clears it. An ACTIVE lease closes the
// listing as well. Cleared applications stop counting.
func (l *Listing) IsAvailable(applications []Application, leases []Lease) bool {
	if l.DeletedOn != nil {
		return false
	}
	for i := range applications {
		if applications[i].ListingID != l.ID {
			continue
		}
		if applications[i].ClearedOn == nil {
			return false
		}
	}
	for i := range leases {
		if leases[i].ListingID == l.ID && leases[i].Status == LeaseStatusActive {
			return false
		}
	}
	return true
}
