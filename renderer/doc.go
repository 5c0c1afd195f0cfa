// Package renderer draws a simulation snapshot, either live with
// raylib (DiscRenderer, used by cmd/view) or to a still image on disk
// (WriteFrame, used by cmd/headless) for runs with no display attached.
package renderer
