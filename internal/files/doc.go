// Package files locates the CSV files a tool run works on and writes
// downloaded files to disk.
//
// Discovery lists files in a working directory in a stable order, so every
// run of a tool visits files identically. Manager creates directories and
// writes files atomically.
package files
