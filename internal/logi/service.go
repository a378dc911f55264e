package logi

// LogiService is the orchestration layer that coordinates storage, archive
// and credentials to perform the operations needed by the CLI and the shell.
type LogiService struct {
	database  Database
	archive   Archive
	encryptor Encryptor
	hasher    PasswordHasher
	logger    Logger
	clock     Clock
	idgen     IDGenerator
}

// NewLogiService creates a new LogiService with the provided dependencies.
func NewLogiService(database Database, archive Archive, encryptor Encryptor, hasher PasswordHasher, logger Logger, clock Clock, idgen IDGenerator) *LogiService {
	return &LogiService{
		database:  database,
		archive:   archive,
		encryptor: encryptor,
		hasher:    hasher,
		logger:    logger,
		clock:     clock,
		idgen:     idgen,
	}
}
