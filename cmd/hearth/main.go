// Hearth Core - Conversational Smart Home Hub
//
// This is the main entry point for the Hearth Core application. Hearth
// turns free-text chat messages into device commands, automation rules
// and status reports for a simulated household, and streams state
// changes to connected dashboards.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/hearthhome/hearth-core/migrations"

	"github.com/hearthhome/hearth-core/internal/api"
	"github.com/hearthhome/hearth-core/internal/auth"
	"github.com/hearthhome/hearth-core/internal/automation"
	"github.com/hearthhome/hearth-core/internal/chat"
	"github.com/hearthhome/hearth-core/internal/device"
	"github.com/hearthhome/hearth-core/internal/energy"
	"github.com/hearthhome/hearth-core/internal/infrastructure/config"
	"github.com/hearthhome/hearth-core/internal/infrastructure/database"
	"github.com/hearthhome/hearth-core/internal/infrastructure/influxdb"
	"github.com/hearthhome/hearth-core/internal/infrastructure/logging"
	"github.com/hearthhome/hearth-core/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability. Returning an error lets main handle exit codes
// consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Hearth Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Device directory, seeded on first boot
	directory, err := device.NewDirectory(ctx, device.NewSQLiteRepository(db))
	if err != nil {
		return fmt.Errorf("loading device directory: %w", err)
	}
	directory.SetLogger(log)

	seedDevices, err := device.LoadSeed(cfg.Seed.DevicesFile)
	if err != nil {
		return fmt.Errorf("loading device seed: %w", err)
	}
	created, err := directory.Seed(ctx, seedDevices)
	if err != nil {
		return fmt.Errorf("seeding devices: %w", err)
	}
	log.Info("device directory initialised",
		"devices", directory.Count(), "seeded", created)

	// Automation store
	rules, err := automation.NewStore(ctx, automation.NewSQLiteRepository(db))
	if err != nil {
		return fmt.Errorf("loading automation store: %w", err)
	}
	rules.SetLogger(log)
	log.Info("automation store initialised", "rules", rules.Count())

	// Auth service
	authSvc := auth.NewService(auth.NewUserRepository(db),
		cfg.Security.JWT.Secret, cfg.Security.JWT.AccessTokenTTL)
	authSvc.SetLogger(log)
	if cfg.Security.AdminPassword != "" {
		if _, err := authSvc.EnsureAdmin(ctx, cfg.Security.AdminUsername, cfg.Security.AdminPassword); err != nil {
			return fmt.Errorf("seeding admin account: %w", err)
		}
	} else if cfg.Security.RequireAuth {
		log.Warn("require_auth is on but no admin password is configured",
			"hint", "set HEARTH_ADMIN_PASSWORD for first boot")
	}

	// Chat pipeline
	executor := chat.NewExecutor(directory, rules, chat.NewResponder(nil))
	executor.SetLogger(log)
	dispatcher := chat.NewDispatcher(chat.NewMatcher(), executor)
	dispatcher.SetLogger(log)

	// MQTT event relay (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Host, cfg.MQTT.Port),
			"client_id", cfg.MQTT.ClientID,
		)
	} else {
		log.Info("MQTT disabled")
	}

	// InfluxDB telemetry sink (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Energy simulator (optional)
	var simulator *energy.Simulator
	if cfg.Energy.Enabled {
		simulator = energy.NewSimulator(cfg.Energy.HistoryDays,
			time.Duration(cfg.Energy.UpdateInterval)*time.Second)
		simulator.SetLogger(log)
		if influxClient != nil {
			simulator.SetRecorder(influxClient)
		}
		go simulator.Run(ctx)
	} else {
		log.Info("energy simulation disabled")
	}

	// WebSocket hub, shared between the API server and the chat
	// notifier so both REST mutations and chat commands hit the same
	// event stream.
	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)
	dispatcher.SetNotifier(&eventRelay{hub: hub, mqtt: mqttClient, log: log})

	// API server
	server, err := api.New(api.Deps{
		Server:      cfg.Server,
		WS:          cfg.WebSocket,
		Security:    cfg.Security,
		Logger:      log,
		Devices:     directory,
		Rules:       rules,
		Chat:        dispatcher,
		Auth:        authSvc,
		Energy:      simulator,
		ExternalHub: hub,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	if err := healthCheck(ctx, db, mqttClient, influxClient, server); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database

	log.Info("Hearth Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses the HEARTH_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HEARTH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
// Optional clients may be nil when their feature is disabled.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client, server *api.Server) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}

// mqttEvent is the envelope published on the MQTT event topic.
type mqttEvent struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// eventRelay fans chat notifications out to the WebSocket hub and,
// when configured, the MQTT event topic.
//
// The dispatcher calls notifiers on its command path, so MQTT publishes
// happen on a separate goroutine; hub sends are already non-blocking.
type eventRelay struct {
	hub  *api.Hub
	mqtt *mqtt.Client
	log  *logging.Logger
}

// NotifyDeviceStatus implements chat.Notifier.
func (r *eventRelay) NotifyDeviceStatus(ev chat.StatusEvent) {
	r.hub.NotifyDeviceStatus(ev)
	r.publish(api.WSChannelDeviceStatus, ev)
}

// NotifyAutomationChange implements chat.Notifier.
func (r *eventRelay) NotifyAutomationChange(ev chat.AutomationEvent) {
	r.hub.NotifyAutomationChange(ev)
	r.publish(api.WSChannelAutomationStatus, ev)
}

func (r *eventRelay) publish(event string, payload any) {
	if r.mqtt == nil {
		return
	}

	data, err := json.Marshal(mqttEvent{Event: event, Payload: payload})
	if err != nil {
		r.log.Error("marshalling event for MQTT", "error", err)
		return
	}

	go func() {
		if err := r.mqtt.PublishEvent(data); err != nil {
			r.log.Warn("publishing event to MQTT", "error", err, "event", event)
		}
	}()
}
