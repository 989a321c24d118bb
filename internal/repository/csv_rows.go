package repository

import (
	"encoding/json"
	"strconv"
	"strings"

	"hospital-directory/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rows mirror the dataset headers. Every column is decoded as text and
// converted field by field so one bad cell never discards the row.

type doctorRow struct {
	ID             string `csv:"id"`
	Name           string `csv:"name"`
	Specialization string `csv:"specialization"`
	Hospital       string `csv:"hospital"`
	Address        string `csv:"address"`
	Rating         string `csv:"rating"`
	Experience     string `csv:"experience"`
	Image          string `csv:"image"`
}

func (r *doctorRow) toEntity() entity.Doctor {
	return entity.Doctor{
		ID:             recordID(r.ID),
		Name:           r.Name,
		Specialization: r.Specialization,
		Hospital:       r.Hospital,
		Address:        r.Address,
		Rating:         parseRating(r.Rating),
		Experience:     parseCount(r.Experience),
		Image:          strings.TrimSpace(r.Image),
	}
}

type hospitalRow struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Address     string `csv:"address"`
	Type        string `csv:"type"`
	Beds        string `csv:"beds"`
	Rating      string `csv:"rating"`
	Image       string `csv:"image"`
	Specialties string `csv:"specialties"`
}

func (r *hospitalRow) toEntity() entity.Hospital {
	return entity.Hospital{
		ID:          recordID(r.ID),
		Name:        r.Name,
		Address:     r.Address,
		Type:        r.Type,
		Beds:        parseCount(r.Beds),
		Rating:      parseRating(r.Rating),
		Image:       strings.TrimSpace(r.Image),
		Specialties: parseSpecialties(r.Specialties),
	}
}

// recordID keeps a source id untouched and mints a v4 UUID for blank ones.
// Minted ids are not stable across loads.
func recordID(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return uuid.NewString()
	}
	return raw
}

func parseRating(raw string) decimal.NullDecimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func parseCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	// "12.0" style cells
	if d, err := decimal.NewFromString(raw); err == nil {
		return int(d.IntPart())
	}
	return 0
}

// parseSpecialties accepts a JSON array or a ';' / '|' separated list.
func parseSpecialties(raw string) []string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			return compactTags(list)
		}
	}
	return compactTags(strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '|'
	}))
}

func compactTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
