package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBUnknownDriverError
	DBNotConnectedError
	DBTableCheckError
	DBTableExistsCheckError
	DBEmptyDatabaseError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaCollationError
	SchemaAnalyzeError

	// Store errors
	StoreTransactionError
	StoreWriteError
	StoreIntegrityError
	StoreQueryError

	// Ingest errors
	IngestDirError
	IngestFileError
	IngestStationIDError
	IngestFormatError
	IngestCancelledError

	// Query errors
	QueryValidationError

	// Server errors
	ServerStartError
)
