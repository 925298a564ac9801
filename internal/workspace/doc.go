// Package workspace manages the scratch directory holding intermediate build
// files such as the Typst markup, in ephemeral or persistent mode.
//
// Ephemeral mode creates a timestamped directory (e.g.
// resumebuilder-20251214-122336-123456) that Cleanup removes after the build.
//
// Persistent mode uses a fixed directory that survives builds, so the last
// markup can be inspected or fed to typst by hand.
package workspace
