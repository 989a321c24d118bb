package converter

import (
	"hospital-directory/internal/delivery/dto"
	"hospital-directory/internal/domain/entity"

	"github.com/shopspring/decimal"
)

func ratingToResponse(r decimal.NullDecimal) *float64 {
	if !r.Valid {
		return nil
	}
	f := r.Decimal.InexactFloat64()
	return &f
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(d *entity.Doctor) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:             d.ID,
		Name:           d.Name,
		Specialization: d.Specialization,
		Hospital:       d.Hospital,
		Address:        d.Address,
		Rating:         ratingToResponse(d.Rating),
		Experience:     d.Experience,
		Image:          d.Image,
	}
}

// DoctorsToResponses never returns nil so the JSON body carries [] rather than null.
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = DoctorToResponse(&doctors[i])
	}
	return responses
}

// HospitalToResponse converts a Hospital entity to HospitalResponse DTO
func HospitalToResponse(h *entity.Hospital) dto.HospitalResponse {
	specialties := h.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return dto.HospitalResponse{
		ID:          h.ID,
		Name:        h.Name,
		Address:     h.Address,
		Type:        h.Type,
		Beds:        h.Beds,
		Rating:      ratingToResponse(h.Rating),
		Image:       h.Image,
		Specialties: specialties,
	}
}

func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i := range hospitals {
		responses[i] = HospitalToResponse(&hospitals[i])
	}
	return responses
}
