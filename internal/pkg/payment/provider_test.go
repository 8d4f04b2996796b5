package payment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/payu-starter/app/models"
	"github.com/ManuelReschke/payu-starter/internal/pkg/payu"
)

type memorySettings struct {
	settings models.PayUSettings
	saves    int
	loadErr  error
}

func (m *memorySettings) GetPayUSettings() (models.PayUSettings, error) {
	if m.loadErr != nil {
		return models.PayUSettings{}, m.loadErr
	}
	s := m.settings
	s.Normalize()
	return s, nil
}

func (m *memorySettings) SavePayUSettings(s models.PayUSettings) error {
	m.saves++
	m.settings = s
	return nil
}

func TestClientProvider_Unconfigured(t *testing.T) {
	p := NewClientProvider(&memorySettings{}, payu.Endpoints{})
	assert.Nil(t, p.Current())

	require.NoError(t, p.Reload())
	assert.Nil(t, p.Current())
	assert.Equal(t, models.DefaultAppBaseURL, p.Credentials().AppBaseURL)
}

func TestClientProvider_ReloadSwapsClient(t *testing.T) {
	store := &memorySettings{settings: models.PayUSettings{PosID: "1", ClientSecret: "a"}}
	p := NewClientProvider(store, payu.Endpoints{})
	require.NoError(t, p.Reload())

	first := p.Current()
	require.NotNil(t, first)
	assert.Equal(t, "1", first.(*payu.Client).PosID())

	store.settings.PosID = "2"
	require.NoError(t, p.Reload())
	second := p.Current()
	require.NotNil(t, second)
	assert.Equal(t, "2", second.(*payu.Client).PosID())
	assert.NotSame(t, first, second)

	store.settings.ClientSecret = ""
	require.NoError(t, p.Reload())
	assert.Nil(t, p.Current())
}

func TestClientProvider_ReloadError(t *testing.T) {
	p := NewClientProvider(&memorySettings{loadErr: errors.New("db down")}, payu.Endpoints{})
	assert.Error(t, p.Reload())
	assert.Nil(t, p.Current())
}

func TestClientProvider_Save(t *testing.T) {
	store := &memorySettings{}
	p := NewClientProvider(store, payu.Endpoints{})

	err := p.Save(models.PayUSettings{PosID: "1", ClientSecret: "s", AppBaseURL: "not a url"})
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, 0, store.saves)
	assert.Nil(t, p.Current())

	require.NoError(t, p.Save(models.PayUSettings{PosID: " 1 ", ClientSecret: "s", SecondKey: "k", AppBaseURL: "https://shop.example/"}))
	assert.Equal(t, 1, store.saves)
	require.NotNil(t, p.Current())
	creds := p.Credentials()
	assert.Equal(t, "1", creds.PosID)
	assert.Equal(t, "k", creds.SecondKey)
	assert.Equal(t, "https://shop.example", creds.AppBaseURL)
	assert.Equal(t, "https://shop.example/payu/notify", p.Current().(*payu.Client).NotifyURL())
}
