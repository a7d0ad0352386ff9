// Package editcmd holds the commands that create and modify scene files.
package editcmd
