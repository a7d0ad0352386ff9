// Package exportcmd holds the commands that turn scene files into flat
// images.
package exportcmd
