package app

import (
	"context"
	"fmt"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/services/auth"
	"github.com/nemesis-app/nemesis-server/internal/app/services/finances"
	"github.com/nemesis-app/nemesis-server/internal/app/services/gratitude"
	"github.com/nemesis-app/nemesis-server/internal/app/services/habits"
	"github.com/nemesis-app/nemesis-server/internal/app/services/hydration"
	"github.com/nemesis-app/nemesis-server/internal/app/services/insights"
	"github.com/nemesis-app/nemesis-server/internal/app/services/journals"
	settingssvc "github.com/nemesis-app/nemesis-server/internal/app/services/settings"
	"github.com/nemesis-app/nemesis-server/internal/app/services/sleep"
	"github.com/nemesis-app/nemesis-server/internal/app/services/subscriptions"
	wellnesssvc "github.com/nemesis-app/nemesis-server/internal/app/services/wellness"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	"github.com/nemesis-app/nemesis-server/internal/app/storage/memory"
	"github.com/nemesis-app/nemesis-server/internal/app/system"
	"github.com/nemesis-app/nemesis-server/internal/insight"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Users         storage.UserStore
	Settings      storage.SettingsStore
	Habits        storage.HabitStore
	Journals      storage.JournalStore
	Finances      storage.FinanceStore
	Wellness      storage.WellnessStore
	Gratitude     storage.GratitudeStore
	Hydration     storage.HydrationStore
	Sleep         storage.SleepStore
	Subscriptions storage.SubscriptionStore
	Purger        storage.Purger
}

// Options carries the non-store dependencies of the application.
type Options struct {
	AuthSecret []byte
	AuthIssuer string
	TokenTTL   time.Duration
	Generator  insights.Generator
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Auth          *auth.Service
	Habits        *habits.Service
	Journals      *journals.Service
	Finances      *finances.Service
	Wellness      *wellnesssvc.Service
	Gratitude     *gratitude.Service
	Hydration     *hydration.Service
	Sleep         *sleep.Service
	Subscriptions *subscriptions.Service
	Settings      *settingssvc.Service
	Insights      *insights.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, opts Options, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}
	if len(opts.AuthSecret) == 0 {
		return nil, fmt.Errorf("auth secret is required")
	}

	if opts.Generator == nil {
		// Without a configured key the client reports AINotConfigured per
		// call, so the insights endpoint still answers coherently.
		opts.Generator = insight.NewClient(insight.Config{}, log)
	}

	mem := memory.New()
	if stores.Users == nil {
		stores.Users = mem
	}
	if stores.Settings == nil {
		stores.Settings = mem
	}
	if stores.Habits == nil {
		stores.Habits = mem
	}
	if stores.Journals == nil {
		stores.Journals = mem
	}
	if stores.Finances == nil {
		stores.Finances = mem
	}
	if stores.Wellness == nil {
		stores.Wellness = mem
	}
	if stores.Gratitude == nil {
		stores.Gratitude = mem
	}
	if stores.Hydration == nil {
		stores.Hydration = mem
	}
	if stores.Sleep == nil {
		stores.Sleep = mem
	}
	if stores.Subscriptions == nil {
		stores.Subscriptions = mem
	}
	if stores.Purger == nil {
		stores.Purger = mem
	}

	manager := system.NewManager()

	authService := auth.New(stores.Users, opts.AuthSecret, opts.AuthIssuer, log).WithTokenTTL(opts.TokenTTL)
	habitService := habits.New(stores.Habits, log)
	journalService := journals.New(stores.Journals, log)
	financeService := finances.New(stores.Finances, log)
	wellnessService := wellnesssvc.New(stores.Wellness, log)
	gratitudeService := gratitude.New(stores.Gratitude, log)
	hydrationService := hydration.New(stores.Hydration, log)
	sleepService := sleep.New(stores.Sleep, log)
	subscriptionService := subscriptions.New(stores.Subscriptions, log)
	settingsService := settingssvc.New(settingssvc.Stores{
		Users:         stores.Users,
		Settings:      stores.Settings,
		Habits:        stores.Habits,
		Journals:      stores.Journals,
		Finances:      stores.Finances,
		Wellness:      stores.Wellness,
		Gratitude:     stores.Gratitude,
		Hydration:     stores.Hydration,
		Sleep:         stores.Sleep,
		Subscriptions: stores.Subscriptions,
		Purger:        stores.Purger,
	}, log)
	insightService := insights.New(stores.Finances, stores.Journals, stores.Habits, opts.Generator, log)

	for _, name := range []string{"auth", "habits", "journals", "finances", "trackers", "settings", "insights"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	return &Application{
		manager:       manager,
		log:           log,
		Auth:          authService,
		Habits:        habitService,
		Journals:      journalService,
		Finances:      financeService,
		Wellness:      wellnessService,
		Gratitude:     gratitudeService,
		Hydration:     hydrationService,
		Sleep:         sleepService,
		Subscriptions: subscriptionService,
		Settings:      settingsService,
		Insights:      insightService,
	}, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
