package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

var (
	AllowedMaterialMimeTypes = []string{"image/", "video/", "application/pdf", "text/"}
	AllowedAvatarMimeTypes   = []string{"image/"}
)
