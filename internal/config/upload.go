package config

// UploadConfig limits invoice document uploads
type UploadConfig struct {
	MaxFileSizeBytes    int64    `mapstructure:"max_file_size_bytes" validate:"gt=0"`
	AllowedContentTypes []string `mapstructure:"allowed_content_types" validate:"min=1"`
}
