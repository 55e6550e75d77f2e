package errors

// ErrorCategory groups related application errors for unified handling.
type ErrorCategory string

const (
	ErrCategorySystem     ErrorCategory = "SYSTEM"
	ErrCategoryConfig     ErrorCategory = "CONFIG"
	ErrCategoryPackage    ErrorCategory = "PACKAGE"
	ErrCategoryRepository ErrorCategory = "REPOSITORY"
	ErrCategoryDependency ErrorCategory = "DEPENDENCY"
	ErrCategoryService    ErrorCategory = "SERVICE"
	ErrCategoryDatabase   ErrorCategory = "DATABASE"
)

// Generic error code definitions used as sensible defaults across modules.
const (
	CodeSystemGeneric     = "SYS-000"
	CodeConfigGeneric     = "CFG-000"
	CodePackageGeneric    = "PKG-000"
	CodeRepositoryGeneric = "REPO-000"
	CodeDependencyGeneric = "DEP-000"
	CodeServiceGeneric    = "SVC-000"
	CodeDatabaseGeneric   = "DB-000"
)
