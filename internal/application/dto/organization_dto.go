package dto

import "time"

// CreateOrganizationRequest entrada para crear una organización.
type CreateOrganizationRequest struct {
	Code    string `json:"code" validate:"required,max=50"`
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Type    string `json:"type" validate:"omitempty,oneof=client_lab healthcare other"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateOrganizationRequest actualización parcial.
type UpdateOrganizationRequest struct {
	Code     *string `json:"code"`
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrganizationListResponse lista paginada.
type OrganizationListResponse struct {
	Items []OrganizationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// CreateLocationRequest entrada para crear una sede.
type CreateLocationRequest struct {
	OrganizationID string `json:"organization_id" validate:"required,uuid"`
	Code           string `json:"code" validate:"required,max=50"`
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postal_code"`
	Phone          string `json:"phone"`
}

// UpdateLocationRequest actualización parcial.
type UpdateLocationRequest struct {
	Code       *string `json:"code"`
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Phone      *string `json:"phone"`
	IsActive   *bool   `json:"is_active"`
}

// LocationResponse salida de una sede.
type LocationResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	PostalCode     string    `json:"postal_code"`
	Phone          string    `json:"phone"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LocationListResponse lista paginada.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateContactRequest entrada para crear un contacto.
type CreateContactRequest struct {
	OrganizationID string  `json:"organization_id" validate:"required,uuid"`
	LocationID     *string `json:"location_id" validate:"omitempty,uuid"`
	FirstName      string  `json:"first_name" validate:"required"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Title          string  `json:"title"`
	IsPrimary      bool    `json:"is_primary"`
}

// UpdateContactRequest actualización parcial.
type UpdateContactRequest struct {
	LocationID *string `json:"location_id"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Title      *string `json:"title"`
	IsPrimary  *bool   `json:"is_primary"`
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	LocationID     *string   `json:"location_id,omitempty"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Title          string    `json:"title"`
	IsPrimary      bool      `json:"is_primary"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContactListResponse lista paginada.
type ContactListResponse struct {
	Items []ContactResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
