package entity

import "github.com/shopspring/decimal"

// Doctor is a row of the doctors dataset. Rating is invalid when the source
// cell was blank or not a number.
type Doctor struct {
	ID             string
	Name           string
	Specialization string
	Hospital       string
	Address        string
	Rating         decimal.NullDecimal
	Experience     int
	Image          string
}

// Matches reports whether q, already lower-cased, occurs in the doctor's
// name, specialization, hospital or address.
func (d *Doctor) Matches(q string) bool {
	return containsFold(d.Name, q) ||
		containsFold(d.Specialization, q) ||
		containsFold(d.Hospital, q) ||
		containsFold(d.Address, q)
}
