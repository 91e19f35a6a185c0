package handler

import (
	"strings"

	"eventcare/internal/records/models"
	dErrors "eventcare/pkg/domain-errors"
)

const maxTextLength = 2000

// CreatePatientRequest is the body of POST /events/{eventID}/patients.
type CreatePatientRequest struct {
	Name      string `json:"name"`
	Complaint string `json:"complaint"`
}

func (r *CreatePatientRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Complaint = strings.TrimSpace(r.Complaint)
}

func (r *CreatePatientRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if len(r.Complaint) > maxTextLength {
		return dErrors.New(dErrors.CodeValidation, "complaint is too long")
	}
	return nil
}

// UpdatePatientRequest is the body of PATCH /patients/{patientID}. Absent
// fields are left unchanged.
type UpdatePatientRequest struct {
	Name        *string `json:"name"`
	Complaint   *string `json:"complaint"`
	Disposition *string `json:"disposition"`
}

func (r *UpdatePatientRequest) Validate() error {
	if r.Name == nil && r.Complaint == nil && r.Disposition == nil {
		return dErrors.New(dErrors.CodeValidation, "at least one field is required")
	}
	for _, f := range []*string{r.Complaint, r.Disposition} {
		if f != nil && len(*f) > maxTextLength {
			return dErrors.New(dErrors.CodeValidation, "field is too long")
		}
	}
	return nil
}

func (r *UpdatePatientRequest) toUpdate() models.PatientUpdate {
	return models.PatientUpdate{Name: r.Name, Complaint: r.Complaint, Disposition: r.Disposition}
}

type VitalRequest struct {
	HeartRate   int    `json:"heart_rate"`
	RespRate    int    `json:"resp_rate"`
	SystolicBP  int    `json:"systolic_bp"`
	DiastolicBP int    `json:"diastolic_bp"`
	SpO2        int    `json:"spo2"`
	Notes       string `json:"notes"`
}

func (r *VitalRequest) Validate() error {
	if len(r.Notes) > maxTextLength {
		return dErrors.New(dErrors.CodeValidation, "notes are too long")
	}
	return nil
}

func (r *VitalRequest) toReadings() models.VitalReadings {
	return models.VitalReadings{
		HeartRate:   r.HeartRate,
		RespRate:    r.RespRate,
		SystolicBP:  r.SystolicBP,
		DiastolicBP: r.DiastolicBP,
		SpO2:        r.SpO2,
		Notes:       r.Notes,
	}
}

type TreatmentRequest struct {
	Intervention string `json:"intervention"`
	Dose         string `json:"dose"`
	Notes        string `json:"notes"`
}

func (r *TreatmentRequest) Normalize() {
	r.Intervention = strings.TrimSpace(r.Intervention)
}

func (r *TreatmentRequest) Validate() error {
	if r.Intervention == "" {
		return dErrors.New(dErrors.CodeValidation, "intervention is required")
	}
	if len(r.Notes) > maxTextLength {
		return dErrors.New(dErrors.CodeValidation, "notes are too long")
	}
	return nil
}
