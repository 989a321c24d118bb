package entity

import "github.com/shopspring/decimal"

// Hospital is a row of the hospitals dataset.
type Hospital struct {
	ID          string
	Name        string
	Address     string
	Type        string
	Beds        int
	Rating      decimal.NullDecimal
	Image       string
	Specialties []string
}

// Matches reports whether q, already lower-cased, occurs in the hospital's
// name, address or type, or in any of its specialties.
func (h *Hospital) Matches(q string) bool {
	if containsFold(h.Name, q) || containsFold(h.Address, q) || containsFold(h.Type, q) {
		return true
	}
	for _, s := range h.Specialties {
		if containsFold(s, q) {
			return true
		}
	}
	return false
}
