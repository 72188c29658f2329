package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	BusinessID  int64   `json:"-"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Duration    int     `json:"duration" validate:"required"` // минуты
}

// ToDomain конвертирует запрос в domain модель (с обрезкой пробелов)
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	service := &domain.Service{
		BusinessID:      r.BusinessID,
		Name:            strings.TrimSpace(r.Name),
		DurationMinutes: r.Duration,
	}
	if r.Description != nil {
		if d := strings.TrimSpace(*r.Description); d != "" {
			service.Description = &d
		}
	}
	return service
}

// Response модели

// ServiceResponse услуга для владельца
type ServiceResponse struct {
	ID          int64     `json:"id"`
	BusinessID  int64     `json:"business_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
}

// PublicServiceResponse услуга для публичной страницы бизнеса
type PublicServiceResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Duration    int     `json:"duration"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:          s.ID,
		BusinessID:  s.BusinessID,
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.DurationMinutes,
		CreatedAt:   s.CreatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг
func FromDomainServiceList(services []*domain.Service) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, *FromDomainService(s))
	}
	return result
}

// ToPublicServiceList конвертирует список услуг для публичной выдачи
func ToPublicServiceList(services []*domain.Service) []PublicServiceResponse {
	result := make([]PublicServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, PublicServiceResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Duration:    s.DurationMinutes,
		})
	}
	return result
}
