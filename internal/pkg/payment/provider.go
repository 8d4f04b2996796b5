package payment

import (
	"context"
	"fmt"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/ManuelReschke/payu-starter/app/models"
	"github.com/ManuelReschke/payu-starter/internal/pkg/payu"
)

// Gateway creates orders at the payment gateway.
type Gateway interface {
	CreateOrder(ctx context.Context, req payu.OrderRequest) (*payu.OrderResponse, error)
}

// SettingsStore persists the gateway configuration.
type SettingsStore interface {
	GetPayUSettings() (models.PayUSettings, error)
	SavePayUSettings(settings models.PayUSettings) error
}

type providerState struct {
	client   *payu.Client
	settings models.PayUSettings
}

// ClientProvider holds the current gateway client. It is rebuilt from the
// settings store on Reload and swapped atomically.
type ClientProvider struct {
	store     SettingsStore
	endpoints payu.Endpoints
	config    payu.Config
	state     atomic.Pointer[providerState]
}

// NewClientProvider creates a provider with no client loaded yet.
func NewClientProvider(store SettingsStore, endpoints payu.Endpoints) *ClientProvider {
	p := &ClientProvider{store: store, endpoints: endpoints}
	p.state.Store(&providerState{})
	return p
}

// WithClientConfig sets transport overrides applied to every built client.
func (p *ClientProvider) WithClientConfig(cfg payu.Config) *ClientProvider {
	p.config = cfg
	return p
}

// Reload reads the settings and replaces the current client. Incomplete
// credentials leave the provider without a client.
func (p *ClientProvider) Reload() error {
	settings, err := p.store.GetPayUSettings()
	if err != nil {
		return fmt.Errorf("failed to load payu settings: %w", err)
	}

	next := &providerState{settings: settings}
	if settings.Configured() {
		cfg := p.config
		cfg.PosID = settings.PosID
		cfg.ClientSecret = settings.ClientSecret
		cfg.BaseURL = settings.AppBaseURL
		cfg.Endpoints = p.endpoints
		client, err := payu.NewClient(cfg)
		if err != nil {
			return err
		}
		next.client = client
	}
	p.state.Store(next)

	log.WithFields(log.Fields{
		"configured": next.client != nil,
		"base_url":   settings.AppBaseURL,
	}).Info("payu client reloaded")
	return nil
}

// Current returns the active gateway, or nil when unconfigured.
func (p *ClientProvider) Current() Gateway {
	if c := p.state.Load().client; c != nil {
		return c
	}
	return nil
}

// Credentials returns the settings the current client was built from.
func (p *ClientProvider) Credentials() models.PayUSettings {
	return p.state.Load().settings
}

// Save validates and persists new settings, then reloads the client.
func (p *ClientProvider) Save(settings models.PayUSettings) error {
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := p.store.SavePayUSettings(settings); err != nil {
		return err
	}
	return p.Reload()
}
