package messages

// Archive extraction messages.
const (
	ArchiveExtracting = "extracting schema archive"
	ArchiveToolFailed = "extraction tool failed"
	ArchiveConfigRoot = "configuration root located"

	ArchiveNotFoundFmt       = "schema archive %s is not usable: %v"
	ArchiveExtractFailedFmt  = "archive extraction failed: %s"
	ArchiveNoConfigDir       = "extraction produced no files; the archive appears to be empty"
	ArchivePrepareScratchFmt = "prepare scratch directory %s: %w"
	ArchiveInspectScratchFmt = "inspect scratch directory %s: %w"
)
