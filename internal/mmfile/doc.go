// Package mmfile provides platform-specific helpers for memory-mapping
// registry files. On Unix the file is mapped read-only through
// golang.org/x/sys/unix; elsewhere it is read into memory.
package mmfile
