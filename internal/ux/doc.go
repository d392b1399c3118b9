// Package ux holds the viewer's display preferences.
//
// Today that is a single dark-mode flag, persisted under its own key in the
// same backend as the feed. On first run the flag follows the terminal's
// ambient colour scheme.
package ux
