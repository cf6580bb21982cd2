package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *SovriumError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *SovriumError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *SovriumError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Schema errors

func SchemaInvalid(detail string) *SovriumError {
	return New(CategorySchema, SeverityFatal, "application schema invalid").
		WithContext("detail", detail)
}

func DefaultLanguageUnknown(code string) *SovriumError {
	return New(CategorySchema, SeverityFatal, "default language not in supported set").
		WithContext("language", code)
}

// Route errors

func RouteCollision(path string, pages ...string) *SovriumError {
	return New(CategoryRoute, SeverityFatal, "output path produced by multiple pages").
		WithContext("output_path", path).
		WithContext("pages", pages)
}

// Render errors

func RenderFailed(page string, cause error) *SovriumError {
	return Wrap(cause, CategoryRender, SeverityFatal, "page rendering failed").
		WithContext("page", page)
}

func MissingTranslation(key, language string) *SovriumError {
	return New(CategoryRender, SeverityWarning, "translation key not found").
		WithContext("key", key).
		WithContext("language", language)
}

// Asset errors

func AssetCopyError(path string, cause error) *SovriumError {
	return Wrap(cause, CategoryAsset, SeverityFatal, "asset copy failed").
		WithContext("path", path)
}

func AssetMissing(ref string) *SovriumError {
	return New(CategoryAsset, SeverityWarning, "referenced asset not found in public directory").
		WithContext("reference", ref)
}

// Deployment errors

func DeployArtifactError(artifact string, cause error) *SovriumError {
	return Wrap(cause, CategoryDeploy, SeverityFatal, "deployment artifact generation failed").
		WithContext("artifact", artifact)
}

// Filesystem errors

func OutputDirError(operation string, cause error) *SovriumError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output directory operation failed").
		WithContext("operation", operation)
}
