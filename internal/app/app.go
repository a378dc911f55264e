package app

import (
	"fmt"
	"os"

	"sislog/internal/archive"
	"sislog/internal/auth"
	"sislog/internal/config"
	"sislog/internal/database"
	"sislog/internal/database/sqlc"
	"sislog/internal/encryption"
	"sislog/internal/logi"
)

// LogiApp is the application layer between the CLI and LogiService.
// It constructs all dependencies from config, records mutating operations
// and manages the DB lifecycle on Close.
type LogiApp struct {
	cfg       *config.Config
	db        *database.SQLiteDatabase
	archive   logi.Archive
	encryptor logi.Encryptor
	service   *logi.LogiService
	logger    logi.Logger
	logFile   *os.File
	sessionID string
}

// Options tweak how NewLogiApp builds the application.
type Options struct {
	// Verbose mirrors log output to stderr.
	Verbose bool
	// SkipMigrationCheck opens the database even when migrations are
	// pending. Only "sislog db migrate" sets it.
	SkipMigrationCheck bool
}

// NewLogiApp creates a fully wired LogiApp from the given config.
// The caller must call Close when done.
func NewLogiApp(cfg *config.Config, opts Options) (*LogiApp, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	arc, err := archive.NewArchiveFromConfig(cfg.Archive)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database, cfg.StationID)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if !opts.SkipMigrationCheck {
		if err := db.CheckMigrations(); err != nil {
			db.Close()
			return nil, fmt.Errorf("database schema out of date (run \"sislog db migrate\"): %w", err)
		}
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	sessionID := logi.UUIDGenerator{}.New()[:8]
	l, logFile, err := newLogger(cfg.LogDir, sessionID, level, opts.Verbose)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: l}

	hasher := auth.NewHasherFromConfig(cfg.Auth)
	svc := logi.NewLogiService(db, arc, enc, hasher, logger, logi.RealClock{}, logi.UUIDGenerator{})

	return &LogiApp{
		cfg:       cfg,
		db:        db,
		archive:   arc,
		encryptor: enc,
		service:   svc,
		logger:    logger,
		logFile:   logFile,
		sessionID: sessionID,
	}, nil
}

// Service exposes the domain service to the shell.
func (a *LogiApp) Service() *logi.LogiService {
	return a.service
}

// Logger returns the application logger.
func (a *LogiApp) Logger() logi.Logger {
	return a.logger
}

// Record runs fn as a recorded operation. The operation row is written
// before fn runs and finished with fn's outcome afterwards. fn's error is
// returned unchanged.
func (a *LogiApp) Record(operation, parameters string, fn func() error) error {
	op := NewOperation(operation, parameters)
	if err := a.persistOperation(op); err != nil {
		return err
	}

	err := fn()
	op.Finish(err)
	if ferr := a.db.FinishOperation(op.ID, op.Status); ferr != nil {
		a.logger.Error("finishing operation", "id", op.ID, "operation", operation, "error", ferr)
	}
	return err
}

// persistOperation saves the operation to the database, giving it an auto-increment ID.
func (a *LogiApp) persistOperation(op *Operation) error {
	if op.Persisted() {
		return nil // already persisted
	}
	dbOp, err := a.db.CreateOperation(op.Operation, op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	op.ID = dbOp.ID
	return nil
}

// BackupDatabase stores an encrypted snapshot of the database in the archive.
func (a *LogiApp) BackupDatabase() (string, error) {
	var name string
	err := a.Record("db backup", a.cfg.Archive.Name, func() error {
		var err error
		name, err = a.service.BackupDatabase(a.cfg.StationID)
		return err
	})
	return name, err
}

// ListSnapshots returns the snapshots stored for this station, newest first.
func (a *LogiApp) ListSnapshots() ([]string, error) {
	return a.service.ListSnapshots(a.cfg.StationID)
}

// RestoreDatabase decrypts the named snapshot into destPath.
func (a *LogiApp) RestoreDatabase(name, passphrase, destPath string) error {
	return a.service.RestoreDatabase(a.cfg.StationID, name, passphrase, destPath)
}

// SetupKeys generates the age key pair used for snapshots.
func (a *LogiApp) SetupKeys(passphrase string) error {
	if a.encryptor.IsConfigured() {
		return fmt.Errorf("%w: encryption keys", logi.ErrAlreadyExists)
	}
	return a.encryptor.Setup(passphrase)
}

// PublicKey returns the recipient snapshots are encrypted to, or "" when the
// configured encryptor has no public key to show.
func (a *LogiApp) PublicKey() (string, error) {
	pk, ok := a.encryptor.(interface{ PublicKey() (string, error) })
	if !ok {
		return "", nil
	}
	return pk.PublicKey()
}

// ValidateArchive checks that the configured archive is reachable.
func (a *LogiApp) ValidateArchive() error {
	return a.archive.ValidateSetup()
}

// Migrate applies pending schema migrations. It returns the schema version
// before and after migrating.
func (a *LogiApp) Migrate() (from, to uint, err error) {
	before, err := a.db.Migrate()
	if err != nil {
		return 0, 0, err
	}
	a.logger.Info("database migrated", "from", before.Version, "to", before.Latest)
	return before.Version, before.Latest, nil
}

// GetHistory returns the most recent recorded operations.
func (a *LogiApp) GetHistory(limit int) ([]*sqlc.Operation, error) {
	return a.service.GetHistory(limit)
}

// Close closes the database and the log file.
func (a *LogiApp) Close() error {
	var firstErr error

	if err := a.db.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
