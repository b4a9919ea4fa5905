package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/boticaviva/backend/internal/cloudsync"
	"github.com/boticaviva/backend/pkg/db/models"
	"github.com/boticaviva/backend/pkg/enums"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
	"github.com/boticaviva/backend/pkg/logger"
	"github.com/boticaviva/backend/pkg/types"
)

// Settings is the storefront configuration document. It round-trips through
// the admin panel, the settings row and the cloud sync service unchanged.
type Settings struct {
	StoreName       string                `json:"store_name"`
	LogoURL         string                `json:"logo_url,omitempty"`
	SmallLogoURL    string                `json:"small_logo_url,omitempty"`
	PrimaryColor    string                `json:"primary_color"`
	FooterText      string                `json:"footer_text,omitempty"`
	Country         string                `json:"country"`
	CurrencyCode    string                `json:"currency_code"`
	CurrencySymbol  string                `json:"currency_symbol"`
	Locale          string                `json:"locale"`
	AllowDelivery   bool                  `json:"allow_delivery"`
	AllowPickup     bool                  `json:"allow_pickup"`
	PromoActive     bool                  `json:"promo_active"`
	PaymentChannels types.PaymentChannels `json:"payment_channels"`
	PromoSlides     types.PromoSlides     `json:"promo_slides"`
}

// UpdateInput is the admin's full-replacement payload. Currency fields are
// absent on purpose; they only move through SetCountry.
type UpdateInput struct {
	StoreName       string                `json:"store_name" validate:"required"`
	LogoURL         string                `json:"logo_url"`
	SmallLogoURL    string                `json:"small_logo_url"`
	PrimaryColor    string                `json:"primary_color" validate:"required"`
	FooterText      string                `json:"footer_text"`
	AllowDelivery   bool                  `json:"allow_delivery"`
	AllowPickup     bool                  `json:"allow_pickup"`
	PromoActive     bool                  `json:"promo_active"`
	PaymentChannels types.PaymentChannels `json:"payment_channels"`
	PromoSlides     types.PromoSlides     `json:"promo_slides"`
}

// Service owns the storefront configuration.
type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, input UpdateInput) (Settings, error)
	SetCountry(ctx context.Context, country string) (Settings, error)
	Countries(ctx context.Context) []CurrencyProfile
}

type service struct {
	repo Repo
	sync cloudsync.Client
	log  *logger.Logger
}

// NewService wires the settings service.
func NewService(repo Repo, sync cloudsync.Client, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repo is required")
	}
	if sync == nil {
		return nil, fmt.Errorf("cloud sync client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, sync: sync, log: log}, nil
}

// Get returns the stored settings, or writes and returns the defaults when
// nothing was ever saved. A fresh store works without any admin setup.
func (s *service) Get(ctx context.Context) (Settings, error) {
	row, err := s.repo.Load(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := defaultSettings()
		if err := s.repo.Save(ctx, toRow(defaults)); err != nil {
			// serve the defaults anyway; the row lands on the next write
			s.log.Warn(ctx, "seeding default settings failed")
		}
		return defaults, nil
	}
	if err != nil {
		return Settings{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading settings")
	}
	return fromRow(row), nil
}

// Update replaces every admin-editable field in one write. The currency
// triple of the stored row is preserved untouched.
func (s *service) Update(ctx context.Context, input UpdateInput) (Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return Settings{}, err
	}

	next := current
	next.StoreName = strings.TrimSpace(input.StoreName)
	next.LogoURL = input.LogoURL
	next.SmallLogoURL = input.SmallLogoURL
	next.PrimaryColor = input.PrimaryColor
	next.FooterText = input.FooterText
	next.AllowDelivery = input.AllowDelivery
	next.AllowPickup = input.AllowPickup
	next.PromoActive = input.PromoActive
	next.PaymentChannels = input.PaymentChannels
	next.PromoSlides = input.PromoSlides

	if next.StoreName == "" {
		return Settings{}, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	for _, channel := range next.PaymentChannels {
		if !channel.Kind.IsValid() {
			return Settings{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment channel").
				WithDetails(map[string]string{"kind": string(channel.Kind)})
		}
	}

	if err := s.persist(ctx, next); err != nil {
		return Settings{}, err
	}
	return next, nil
}

// SetCountry swaps the currency triple atomically. An unknown country is a
// silent no-op; nothing else about the settings moves.
func (s *service) SetCountry(ctx context.Context, country string) (Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return Settings{}, err
	}

	profile, ok := ProfileFor(strings.TrimSpace(country))
	if !ok {
		return current, nil
	}

	next := current
	next.Country = profile.Country
	next.CurrencyCode = profile.CurrencyCode
	next.CurrencySymbol = profile.CurrencySymbol
	next.Locale = profile.Locale

	if err := s.persist(ctx, next); err != nil {
		return Settings{}, err
	}
	return next, nil
}

func (s *service) Countries(context.Context) []CurrencyProfile {
	return Countries()
}

func (s *service) persist(ctx context.Context, settings Settings) error {
	if err := s.repo.Save(ctx, toRow(settings)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving settings")
	}

	// best-effort mirror; a sync outage never blocks the admin panel
	if err := s.sync.Save(ctx, settings); err != nil && !errors.Is(err, cloudsync.ErrNotConfigured) {
		s.log.Warn(ctx, "cloud settings sync failed")
	}
	return nil
}

func defaultSettings() Settings {
	profile, _ := ProfileFor(DefaultCountry)
	return Settings{
		StoreName:      "BoticaViva",
		PrimaryColor:   "#0f766e",
		Country:        profile.Country,
		CurrencyCode:   profile.CurrencyCode,
		CurrencySymbol: profile.CurrencySymbol,
		Locale:         profile.Locale,
		AllowDelivery:  true,
		AllowPickup:    true,
		PaymentChannels: types.PaymentChannels{
			{Kind: enums.PaymentChannelYape, Label: "Yape", Active: true},
			{Kind: enums.PaymentChannelPlin, Label: "Plin", Active: true},
			{Kind: enums.PaymentChannelCash, Label: "Pago contra entrega", Active: true},
		},
	}
}

func fromRow(row models.StoreSettings) Settings {
	return Settings{
		StoreName:       row.StoreName,
		LogoURL:         row.LogoURL,
		SmallLogoURL:    row.SmallLogoURL,
		PrimaryColor:    row.PrimaryColor,
		FooterText:      row.FooterText,
		Country:         row.Country,
		CurrencyCode:    row.CurrencyCode,
		CurrencySymbol:  row.CurrencySymbol,
		Locale:          row.Locale,
		AllowDelivery:   row.AllowDelivery,
		AllowPickup:     row.AllowPickup,
		PromoActive:     row.PromoActive,
		PaymentChannels: row.PaymentChannels,
		PromoSlides:     row.PromoSlides,
	}
}

func toRow(settings Settings) models.StoreSettings {
	return models.StoreSettings{
		ID:              models.SettingsRowID,
		StoreName:       settings.StoreName,
		LogoURL:         settings.LogoURL,
		SmallLogoURL:    settings.SmallLogoURL,
		PrimaryColor:    settings.PrimaryColor,
		FooterText:      settings.FooterText,
		Country:         settings.Country,
		CurrencyCode:    settings.CurrencyCode,
		CurrencySymbol:  settings.CurrencySymbol,
		Locale:          settings.Locale,
		AllowDelivery:   settings.AllowDelivery,
		AllowPickup:     settings.AllowPickup,
		PromoActive:     settings.PromoActive,
		PaymentChannels: settings.PaymentChannels,
		PromoSlides:     settings.PromoSlides,
	}
}
