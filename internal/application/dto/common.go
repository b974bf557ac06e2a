package dto

import "github.com/jhoicas/catalogo-api/internal/domain"

// PageResponse metadatos de página en respuestas. Total y Pages se omiten si no se calcularon.
type PageResponse struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    *int `json:"total,omitempty"`
	Pages    *int `json:"pages,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code       string             `json:"code"`
	Message    string             `json:"message"`
	Violations []domain.Violation `json:"violations,omitempty"`
}
