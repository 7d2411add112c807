package filetype

import (
	"mime"
	"strings"
)

// extensions complements the table of the mime package, which (depending on the system) may be
// limited to a handful of web types.
var extensions = map[string]string{
	".7z":   "application/x-7z-compressed",
	".aac":  "audio/aac",
	".avi":  "video/x-msvideo",
	".bin":  "application/octet-stream",
	".bmp":  "image/bmp",
	".bz2":  "application/x-bzip2",
	".csv":  "text/csv",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".epub": "application/epub+zip",
	".exe":  "application/vnd.microsoft.portable-executable",
	".flac": "audio/flac",
	".gif":  "image/gif",
	".gz":   "application/gzip",
	".heic": "image/heic",
	".ico":  "image/x-icon",
	".jar":  "application/java-archive",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".odp":  "application/vnd.oasis.opendocument.presentation",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".odt":  "application/vnd.oasis.opendocument.text",
	".ogg":  "audio/ogg",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".rar":  "application/vnd.rar",
	".rtf":  "application/rtf",
	".tar":  "application/x-tar",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".txt":  "text/plain",
	".wav":  "audio/wav",
	".webm": "video/webm",
	".webp": "image/webp",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xz":   "application/x-xz",
	".zip":  "application/zip",
}

// NormalizeExtension returns the lowercase extension with a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// KnownExtension returns true if the extension (with or without the leading dot) maps to a MIME type.
func KnownExtension(ext string) bool {
	ext = NormalizeExtension(ext)
	if ext == "." {
		return false
	}
	if _, ok := extensions[ext]; ok {
		return true
	}
	return mime.TypeByExtension(ext) != ""
}
