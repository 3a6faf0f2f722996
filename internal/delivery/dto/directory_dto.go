package dto

// Request DTOs

type DirectoryQuery struct {
	Sort   string `json:"sort" validate:"omitempty,oneof=none price experience"`
	Search string `json:"search" validate:"omitempty,max=100"`
	Mode   string `json:"mode" validate:"omitempty,oneof=video in-clinic all"`
}

type ToggleSpecialityRequest struct {
	Speciality string `json:"speciality" validate:"required,max=100"`
}

// Response DTOs

type SpecialityOption struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

type DoctorCardResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Specialities []string `json:"specialities"`
	Experience   string   `json:"experience"`
	Fees         string   `json:"fees"`
	ClinicName   string   `json:"clinic_name"`
	Locality     string   `json:"locality"`
	City         string   `json:"city,omitempty"`
	Photo        string   `json:"photo,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	VideoConsult bool     `json:"video_consult"`
	InClinic     bool     `json:"in_clinic"`
}

type DirectoryResponse struct {
	Status       string               `json:"status"`
	Reason       string               `json:"reason,omitempty"`
	Specialities []SpecialityOption   `json:"specialities"`
	Selected     []string             `json:"selected"`
	Doctors      []DoctorCardResponse `json:"doctors"`
	Count        int                  `json:"count"`
	Total        int                  `json:"total"`
	Sort         string               `json:"sort,omitempty"`
	Search       string               `json:"search,omitempty"`
	Mode         string               `json:"mode,omitempty"`
}
