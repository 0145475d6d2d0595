package domain

import "io"

// UploadFile is one file in an upload batch.
type UploadFile struct {
	// Name is the filename sent to the backend.
	Name string

	// Content provides the file bytes.
	Content io.Reader
}

// UploadFailure records one file that failed during a batch upload.
// A single failure never aborts the rest of the batch.
type UploadFailure struct {
	// Name is the filename that failed.
	Name string

	// Err is the normalized failure.
	Err error
}

// UploadReport summarises an upload batch after every file was attempted.
type UploadReport struct {
	// Attempted is the number of files in the batch.
	Attempted int

	// Uploaded is the number of files the backend accepted.
	Uploaded int

	// Failures lists the files that were rejected or could not be sent.
	Failures []UploadFailure
}
