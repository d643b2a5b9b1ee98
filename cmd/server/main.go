package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"clubdesk/internal/adapters/backup"
	emailPkg "clubdesk/internal/adapters/email"
	"clubdesk/internal/adapters/storage"
	attendanceStore "clubdesk/internal/adapters/storage/attendance"
	memberStore "clubdesk/internal/adapters/storage/member"
	paymentStore "clubdesk/internal/adapters/storage/payment"
	permissionStore "clubdesk/internal/adapters/storage/permission"
	planStore "clubdesk/internal/adapters/storage/plan"
	settingStore "clubdesk/internal/adapters/storage/setting"
	subscriptionStore "clubdesk/internal/adapters/storage/subscription"
	userStore "clubdesk/internal/adapters/storage/user"
	"clubdesk/internal/application/orchestrators"
	"clubdesk/internal/application/settings"
	"clubdesk/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// Stores bundles every store the application wires at startup.
type Stores struct {
	MemberStore       memberStore.Store
	PlanStore         planStore.Store
	SubscriptionStore subscriptionStore.Store
	PaymentStore      paymentStore.Store
	AttendanceStore   attendanceStore.Store
	UserStore         userStore.Store
	SettingStore      settingStore.Store
	PermissionStore   permissionStore.Store
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(os.Getenv("CLUBDESK_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	slog.Info("startup", "event", "database_ready", "path", cfg.DBPath, "version", version)

	timedDB := storage.NewTimedDB(db)

	stores := &Stores{
		MemberStore:       memberStore.NewSQLiteStore(timedDB),
		PlanStore:         planStore.NewSQLiteStore(timedDB),
		SubscriptionStore: subscriptionStore.NewSQLiteStore(timedDB),
		PaymentStore:      paymentStore.NewSQLiteStore(timedDB),
		AttendanceStore:   attendanceStore.NewSQLiteStore(timedDB),
		UserStore:         userStore.NewSQLiteStore(timedDB),
		SettingStore:      settingStore.NewSQLiteStore(timedDB),
		PermissionStore:   permissionStore.NewSQLiteStore(timedDB),
	}

	ctx := context.Background()

	// Seed the default admin account, plans and permissions on an empty install
	userDeps := orchestrators.CreateUserDeps{UserStore: stores.UserStore}
	if err := orchestrators.ExecuteSeedAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, userDeps); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}
	if err := orchestrators.ExecuteSeedPlans(ctx, orchestrators.SeedPlansDeps{PlanStore: stores.PlanStore}); err != nil {
		log.Fatalf("failed to seed plans: %v", err)
	}
	if err := orchestrators.ExecuteSeedPermissions(ctx, stores.PermissionStore); err != nil {
		log.Fatalf("failed to seed permissions: %v", err)
	}

	settingsCache := settings.NewCache(stores.SettingStore)
	clubName, err := settingsCache.GetOrDefault(ctx, "general.gym_name", cfg.ClubName)
	if err != nil {
		log.Fatalf("failed to read settings: %v", err)
	}

	// Catch up on subscriptions that lapsed while the service was down
	sweepDeps := orchestrators.ExpireSubscriptionsDeps{SubscriptionStore: stores.SubscriptionStore}
	if _, err := orchestrators.ExecuteExpireSubscriptions(ctx, sweepDeps); err != nil {
		log.Fatalf("failed to run expiry sweep: %v", err)
	}

	// Background expiry sweep
	stopCh := make(chan struct{})
	defer close(stopCh)
	orchestrators.StartExpirySweepWorker(sweepDeps, cfg.Workers.ExpirySweepInterval, stopCh)

	// Expiry notification emails
	if !cfg.Workers.ExpiryNotificationsOff {
		var sender emailPkg.Sender
		if cfg.Email.ResendAPIKey != "" {
			sender = emailPkg.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
		} else {
			sender = emailPkg.NewNoopSender()
		}
		notifyDeps := orchestrators.NotifyExpiringDeps{
			SubscriptionStore: stores.SubscriptionStore,
			Sender:            sender,
			ClubName:          clubName,
		}
		orchestrators.StartExpiryNotifierWorker(notifyDeps, cfg.Workers.ExpiryNotifyInterval, stopCh)
	}

	// Periodic snapshots of the database file
	backupMgr, err := backup.NewManager(db, cfg.Backup.Dir)
	if err != nil {
		log.Fatalf("failed to set up backups: %v", err)
	}
	backupMgr.StartWorker(cfg.Backup.Interval, cfg.Backup.MaxCount, cfg.Backup.MaxAgeDays, stopCh)

	slog.Info("startup", "event", "service_ready", "env", cfg.Env, "club", clubName)

	// Block until asked to shut down; workers stop via the deferred close
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutdown", "event", "signal_received", "signal", sig.String())
}
