// Package validation checks the directories and files the commands read and
// write before any work starts.
package validation
