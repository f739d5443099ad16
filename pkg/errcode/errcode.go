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

	// Data loading errors
	DataMissingTableError
	DataEmptyTableError
	DataMalformedTableError
	DataCommonNamesError

	// Taxonomy errors
	NotFoundError
	InconsistentAggregateError
	NodeNotVisibleError

	// Extraction errors
	CredentialsError
	QueryError
	WriteTableError
	CacheError

	// Render errors
	RenderError
)
