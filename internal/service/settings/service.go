package settings

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/service/settings/models"
)

const cacheKey = "settings"

// Service настройки ресепшена
// Создается один раз и передается в usecase бронирований и приглашений
type Service struct {
	repo      SettingsRepository
	cache     Cache
	cacheTTL  time.Duration
	changes   ChangeRecorder
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	repo SettingsRepository,
	cache Cache,
	cacheTTL time.Duration,
	changes ChangeRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		changes:   changes,
		txManager: txManager,
		logger:    logger,
	}
}

// Current возвращает действующие настройки (сначала из кеша)
// Ошибка кеша не мешает чтению из БД
func (s *Service) Current(ctx context.Context) (*domain.Settings, error) {
	if raw, err := s.cache.Get(ctx, cacheKey); err != nil {
		s.logger.Warn("Current: cache get failed: %v", err)
	} else if raw != nil {
		var cached domain.Settings
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("Current: cached settings are corrupted, reloading")
	}

	values, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Current: repository error: %v", err)
		return nil, fmt.Errorf("%w: Current - repository error: %v", ErrInternal, err)
	}

	current := fromValues(values, s.logger)

	if raw, err := json.Marshal(current); err == nil {
		if err := s.cache.Set(ctx, cacheKey, raw, s.cacheTTL); err != nil {
			s.logger.Warn("Current: cache set failed: %v", err)
		}
	}

	return current, nil
}

// Get возвращает настройки для отображения
func (s *Service) Get(ctx context.Context, actor domain.Actor) (*models.SettingsResponse, error) {
	if !domain.Can(actor, domain.ActionRead, domain.Record{Model: domain.ModelSettings}) {
		return nil, ErrAccessDenied
	}

	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSettings(current), nil
}

// Update меняет настройки; доступно только администратору
func (s *Service) Update(ctx context.Context, actor domain.Actor, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: officer=%d updating settings", actor.OfficerID)

	if !domain.Can(actor, domain.ActionUpdate, domain.Record{Model: domain.ModelSettings}) {
		s.logger.Warn("Update: access denied for officer=%d", actor.OfficerID)
		return nil, ErrAccessDenied
	}

	values, err := validateUpdate(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		changes := make(map[string]interface{}, len(values))
		for key, value := range values {
			if err := s.repo.Set(txCtx, key, value); err != nil {
				return fmt.Errorf("%w: Update - set %s: %v", ErrInternal, key, err)
			}
			if key == domain.SettingBuildingImage {
				changes[key] = fmt.Sprintf("<%d bytes>", len(value))
				continue
			}
			changes[key] = value
		}
		return s.changes.Record(txCtx, actor, domain.ModelSettings, domain.SettingsRecordID, domain.ChangeUpdated, changes)
	})
	if err != nil {
		s.logger.Error("Update: %v", err)
		return nil, err
	}

	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		s.logger.Warn("Update: cache invalidation failed: %v", err)
	}

	s.logger.Info("Update: settings updated (%d keys)", len(values))
	return s.Get(ctx, actor)
}

// fromValues собирает настройки из key/value; некорректные значения заменяются значениями по умолчанию
func fromValues(values map[string]string, logger Logger) *domain.Settings {
	result := &domain.Settings{
		LocationURL:   values[domain.SettingLocationURL],
		BuildingImage: values[domain.SettingBuildingImage],
	}

	if raw, ok := values[domain.SettingDailyBookingLimit]; ok && raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			logger.Warn("fromValues: invalid %s=%q, using 0", domain.SettingDailyBookingLimit, raw)
		} else {
			result.DailyBookingLimit = limit
		}
	}

	return result
}

func validateUpdate(req *models.UpdateSettingsRequest) (map[string]string, error) {
	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	values := make(map[string]string, 3)

	if req.LocationURL != nil {
		raw := strings.TrimSpace(*req.LocationURL)
		if raw != "" {
			u, err := url.Parse(raw)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return nil, fmt.Errorf("%w: locationUrl must be an absolute http(s) URL", ErrInvalidInput)
			}
		}
		values[domain.SettingLocationURL] = raw
	}

	if req.BuildingImage != nil {
		raw := strings.TrimSpace(*req.BuildingImage)
		if raw != "" {
			if _, err := base64.StdEncoding.DecodeString(raw); err != nil {
				return nil, fmt.Errorf("%w: buildingImage must be base64", ErrInvalidInput)
			}
		}
		values[domain.SettingBuildingImage] = raw
	}

	if req.DailyBookingLimit != nil {
		if *req.DailyBookingLimit < 0 {
			return nil, fmt.Errorf("%w: dailyBookingLimit must not be negative", ErrInvalidInput)
		}
		values[domain.SettingDailyBookingLimit] = strconv.Itoa(*req.DailyBookingLimit)
	}

	return values, nil
}
