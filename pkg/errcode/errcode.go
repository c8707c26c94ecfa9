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
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Input errors
	TriplesDecodeError
	TriplesFormatError
	ContextDecodeError
	ContextNotFoundError
	OverrideDecodeError

	// Compilation errors
	UnresolvedContextError
	AmbiguousIdentifierCollisionError
	UnattachedTermError
	CyclicCompositeTypeError
	MissingDomainClassError
	MissingTargetOntologyError
	RegistryNotFrozenError
	RegistryFrozenError
	TemplateError
	FormatSourceError
	ImportCycleError

	// Runtime (generated code) errors
	ValueTypeError
	ValueValidationError
	UnknownRecordTypeError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBDropTableError
	DBUnsupportedDialectError

	// Schema errors
	SchemaGORMConnectionError
	SchemaMigrateError
	SchemaApplyError
	SchemaInspectError
)
