package transport

// Package transport contains the HTTP side of the uploader: the multipart POST
// transport used by the upload sequencer and the DELETE helper for removing
// uploaded files from an HFS-style server.
