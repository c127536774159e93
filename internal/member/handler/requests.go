package handler

import (
	"guild/internal/member/models"
	"guild/internal/member/service"
	"guild/pkg/domain"
)

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

func (r registerRequest) toInput() service.RegisterInput {
	return service.RegisterInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Username:  r.Username,
		Password:  r.Password,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type rejectRequest struct {
	Note string `json:"note"`
}

// periodPayload carries the discrete nullable date fields of an interval. A
// null end_year means the interval is ongoing.
type periodPayload struct {
	StartYear  int  `json:"start_year"`
	StartMonth *int `json:"start_month"`
	StartDay   *int `json:"start_day"`
	EndYear    *int `json:"end_year"`
	EndMonth   *int `json:"end_month"`
	EndDay     *int `json:"end_day"`
}

func (p periodPayload) toInput() service.PeriodInput {
	return service.PeriodInput{
		StartYear:  p.StartYear,
		StartMonth: p.StartMonth,
		StartDay:   p.StartDay,
		EndYear:    p.EndYear,
		EndMonth:   p.EndMonth,
		EndDay:     p.EndDay,
	}
}

type educationRequest struct {
	InstitutionID string        `json:"institution_id"`
	Kind          string        `json:"kind"`
	Title         string        `json:"title"`
	Period        periodPayload `json:"period"`

	FieldOfStudy string `json:"field_of_study"`
	Level        string `json:"level"`
	CredentialID string `json:"credential_id"`
	Hours        int    `json:"hours"`
}

func (r educationRequest) toInput() (service.EducationInput, error) {
	input := service.EducationInput{
		Title:        r.Title,
		Period:       r.Period.toInput(),
		FieldOfStudy: r.FieldOfStudy,
		Level:        r.Level,
		CredentialID: r.CredentialID,
		Hours:        r.Hours,
	}

	kind, err := models.ParseEducationKind(r.Kind)
	if err != nil {
		return service.EducationInput{}, err
	}
	input.Kind = kind

	if r.InstitutionID != "" {
		id, err := domain.ParseInstitutionID(r.InstitutionID)
		if err != nil {
			return service.EducationInput{}, err
		}
		input.InstitutionID = id
	}
	return input, nil
}

type experienceRequest struct {
	Company     string        `json:"company"`
	Position    string        `json:"position"`
	Description string        `json:"description"`
	Period      periodPayload `json:"period"`
}

func (r experienceRequest) toInput() service.WorkExperienceInput {
	return service.WorkExperienceInput{
		Company:     r.Company,
		Position:    r.Position,
		Description: r.Description,
		Period:      r.Period.toInput(),
	}
}

type institutionRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Website string `json:"website"`
}
