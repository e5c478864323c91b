// Package build runs the packaging pipeline for one project:
//
//	LoadManifest -> CheckRepo -> ResolveIgnore -> CheckCollision -> Walk -> WriteArchive -> Done
//
// Any stage may end the run in Failed. CheckRepo is skipped when dirty
// trees are allowed and CheckCollision is skipped when overwrites are
// pre-approved. Nothing is written before CheckCollision succeeds, so a
// failing manifest or a dirty repository leaves the target directory as it
// was.
//
// All inputs arrive through Options; Run never reads the working directory
// or the environment.
package build
