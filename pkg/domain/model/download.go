package model

// FetchResult reports what one fetch did on disk.
type FetchResult struct {
	Descriptor   ModelDescriptor
	ArchivePath  string
	ChecksumPath string
	PayloadPath  string
	Digest       string
	Layout       ArchiveLayout
	Downloaded   bool  // archive was (re-)transferred
	Extracted    bool  // payload was (re-)derived
	Size         int64 // bytes transferred, zero when skipped
}
