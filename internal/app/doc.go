// Package app composes the Nemesis services into a running application.
//
// The package sits above the domain and storage layers and is responsible
// for wiring, not business logic:
//
//	internal/app/
//	├── application.go      # Application struct, wiring, and lifecycle
//	├── domain/             # Domain models and pure computations
//	│   ├── habit/          # Habits and the streak engine
//	│   ├── journal/        # Journal entries and mood aggregation
//	│   ├── finance/        # Finance records and summaries
//	│   ├── tracker/        # Hydration, sleep and subscriptions
//	│   ├── wellness/       # Daily wellness checklist
//	│   ├── series/         # Generic numeric-series helpers
//	│   └── user/           # Accounts and settings
//	├── storage/            # Store interfaces, memory and postgres backends
//	├── services/           # One service per API surface
//	├── httpapi/            # HTTP handlers and routing
//	├── system/             # Service lifecycle management
//	└── metrics/            # Prometheus instrumentation
//
// Services own validation and orchestration; domain packages hold the pure
// data and calculations; storage implementations stay behind the interfaces
// in internal/app/storage. When adding a new domain, follow the same path:
// model it under domain/, extend the storage interfaces and backends, build
// a service, wire it here and expose it from httpapi.
package app
