package slots

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/service/slots/models"
)

// Service инвентарь слотов владельца бизнеса
type Service struct {
	slotRepo SlotRepository
	location *time.Location
	logger   Logger
}

// NewService создает новый экземпляр сервиса.
// location задает часы бизнеса для фильтров по дате
func NewService(slotRepo SlotRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		slotRepo: slotRepo,
		location: location,
		logger:   logger,
	}
}

// List возвращает слоты бизнеса в любом состоянии, упорядоченные по началу
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) ([]models.SlotResponse, error) {
	s.logger.Info("List: fetching slots for business=%d, service=%q, status=%q, from=%q, to=%q",
		req.BusinessID, req.ServiceID, req.Status, req.From, req.To)

	filter, err := s.toDomainFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	slots, err := s.slotRepo.ListByBusiness(ctx, req.BusinessID, filter)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d slots for business=%d", len(slots), req.BusinessID)
	return models.FromDomainSlotList(slots), nil
}

// toDomainFilter разбирает строковый фильтр
func (s *Service) toDomainFilter(req *models.ListSlotsRequest) (domain.SlotFilter, error) {
	var filter domain.SlotFilter

	if v := strings.TrimSpace(req.ServiceID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return filter, fmt.Errorf("%w: service_id %q", ErrInvalidInput, v)
		}
		filter.ServiceID = &id
	}

	if v := strings.TrimSpace(req.Status); v != "" {
		status, err := domain.ParseSlotStatus(v)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	if v := strings.TrimSpace(req.From); v != "" {
		from, _, err := s.parseBound(v)
		if err != nil {
			return filter, fmt.Errorf("%w: from %q", ErrInvalidInput, v)
		}
		from = from.UTC()
		filter.From = &from
	}

	if v := strings.TrimSpace(req.To); v != "" {
		to, isDate, err := s.parseBound(v)
		if err != nil {
			return filter, fmt.Errorf("%w: to %q", ErrInvalidInput, v)
		}
		// Дата включительно: граница переносится на начало следующих суток
		// в часах бизнеса, до перевода в UTC
		if isDate {
			to = to.AddDate(0, 0, 1)
		}
		to = to.UTC()
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return filter, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	return filter, nil
}

// parseBound принимает дату в часах бизнеса или момент RFC 3339.
// Дата возвращается в s.location
func (s *Service) parseBound(v string) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(domain.DateFormat, v, s.location); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, false, nil
}
