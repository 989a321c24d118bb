package dto

// SearchRequest carries the raw query-string values; neither is validated.
type SearchRequest struct {
	Query  string
	Filter string
}

type DoctorResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	Hospital       string   `json:"hospital"`
	Address        string   `json:"address"`
	Rating         *float64 `json:"rating"`
	Experience     int      `json:"experience"`
	Image          string   `json:"image,omitempty"`
}

type HospitalResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Type        string   `json:"type"`
	Beds        int      `json:"beds"`
	Rating      *float64 `json:"rating"`
	Image       string   `json:"image,omitempty"`
	Specialties []string `json:"specialties"`
}

// SearchResponse always holds both collections; an unrequested one is empty.
type SearchResponse struct {
	Doctors   []DoctorResponse   `json:"doctors"`
	Hospitals []HospitalResponse `json:"hospitals"`
}
