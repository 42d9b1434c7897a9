package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-CoachingService/internal/config"
	"github.com/m04kA/SMC-CoachingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/appointment"
	contractRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/contract"
	scheduleRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CoachingService/pkg/logger"
	"github.com/m04kA/SMC-CoachingService/pkg/simpletxmanager"
)

// Заполняет локальную базу расписаниями, контрактами и встречами.
// Услуги живут в каталоге, поэтому id и длительность задаются флагами
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	professionals := flag.Int("professionals", 20, "number of professionals")
	clients := flag.Int("clients", 200, "number of clients")
	contracts := flag.Int("contracts", 150, "number of contracts")
	serviceID := flag.Int64("service-id", 1, "catalog service id")
	duration := flag.Int("duration", 60, "service duration in minutes")
	sessions := flag.Int("sessions", 4, "sessions per package")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	loc, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Failed to load schedule timezone: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	_ = gofakeit.Seed(time.Now().UnixNano())

	s := &seeder{
		schedules:    scheduleRepo.NewRepository(db),
		contracts:    contractRepo.NewRepository(db),
		appointments: appointmentRepo.NewRepository(db),
		txManager:    simpletxmanager.NewTransactionManager(db),
		log:          log,
		loc:          loc,
		defaults:     domain.WorkingHours{StartHour: cfg.Schedule.WorkStartHour, EndHour: cfg.Schedule.WorkEndHour},
		service: domain.Service{
			ID:              *serviceID,
			DurationMinutes: *duration,
			TotalSessions:   *sessions,
			ValidityDays:    60,
		},
		busy: make(map[string][]domain.BusyInterval),
	}

	ctx := context.Background()
	log.Info("Seed starting: professionals=%d, clients=%d, contracts=%d", *professionals, *clients, *contracts)

	if err := s.seedSchedules(ctx, *professionals); err != nil {
		log.Fatal("Seed schedules: %v", err)
	}
	if err := s.seedContracts(ctx, *contracts, *professionals, *clients); err != nil {
		log.Fatal("Seed contracts: %v", err)
	}

	log.Info("Seed complete")
}
