// Package vcs is the version control collaborator of the build: it answers
// "is this a repository", "is the working tree dirty" and "is this path
// ignored" for a project directory, using go-git.
//
// The project directory may be a subdirectory of the repository. Status and
// ignore answers are always expressed relative to the project directory.
package vcs
