package settings

import "context"

// DefaultReminderMinutes es el lead de recordatorio cuando el usuario no elige otro.
const DefaultReminderMinutes = 10

// Settings son las preferencias globales del proceso (un solo paciente).
type Settings struct {
	EnableNotifications bool `json:"enableNotifications"`
	AutoSave            bool `json:"autoSave"`
	DefaultReminderMin  int  `json:"defaultReminderMinutes"`
}

func Default() Settings {
	return Settings{
		EnableNotifications: false,
		AutoSave:            true,
		DefaultReminderMin:  DefaultReminderMinutes,
	}
}

// Repository es el port de persistencia de settings (registro único).
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Put(ctx context.Context, s Settings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Current devuelve las settings vigentes; nunca falla hacia defaults.
func (s *Service) Current(ctx context.Context) (Settings, error) {
	st, err := s.repo.Get(ctx)
	if err != nil {
		return Default(), err
	}
	return st, nil
}

func (s *Service) Save(ctx context.Context, st Settings) (Settings, error) {
	if st.DefaultReminderMin < 0 {
		st.DefaultReminderMin = DefaultReminderMinutes
	}
	if err := s.repo.Put(ctx, st); err != nil {
		return Settings{}, err
	}
	return st, nil
}
