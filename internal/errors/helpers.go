package errors

import "time"

// New creates a generic AppError with the supplied metadata.
func New(category ErrorCategory, code, message string, err error) *AppError {
	return &AppError{
		Code:      code,
		Category:  category,
		Message:   message,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// SystemError creates a SYSTEM category error instance.
func SystemError(code, message string, err error) *AppError {
	return New(ErrCategorySystem, code, message, err)
}

// ConfigError creates a CONFIG category error instance.
func ConfigError(code, message string, err error) *AppError {
	return New(ErrCategoryConfig, code, message, err)
}

// PackageError creates a PACKAGE category error instance.
func PackageError(code, message string, err error) *AppError {
	return New(ErrCategoryPackage, code, message, err)
}

// RepositoryError creates a REPOSITORY category error instance.
func RepositoryError(code, message string, err error) *AppError {
	return New(ErrCategoryRepository, code, message, err)
}

// DependencyError creates a DEPENDENCY category error instance.
func DependencyError(code, message string, err error) *AppError {
	return New(ErrCategoryDependency, code, message, err)
}

// ServiceError creates a SERVICE category error instance.
func ServiceError(code, message string, err error) *AppError {
	return New(ErrCategoryService, code, message, err)
}

// DatabaseError creates a DATABASE category error instance.
func DatabaseError(code, message string, err error) *AppError {
	return New(ErrCategoryDatabase, code, message, err)
}
