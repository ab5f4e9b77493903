// Package errors provides the classified error primitives used across uibuild.
//
// A ClassifiedError carries a broad category (config, filesystem, transform, ...), a severity
// and structured context such as the file path that failed. Errors are constructed through a
// fluent builder:
//
//	err := errors.WrapError(cause, errors.CategoryTransform, "script transform failed").
//		WithContext("path", path).
//		WithContext("format", "commonjs").
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
