// Package ui renders git command activity for people reading a terminal.
//
// It is used when the log format is "console"; structured runs keep the
// executor's JSON entries instead.
package ui
