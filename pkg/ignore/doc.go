// Package ignore decides which project paths are left out of an archive.
//
// Every policy is a Predicate. The tree walker only talks to Predicate and
// never knows which policy produced it.
//
// Two sources exist:
//
//   - the version control ignore engine (nested .gitignore files, negation,
//     "**"), provided by pkg/vcs through MatcherSource
//   - a flat ignore file (.customsignore by default) holding one path prefix
//     per line
//
// The flat file is deliberately simple: a path is excluded when it starts
// with a listed prefix. There are no wildcards, no "**" and no negation, so
// "node" also excludes "node_modules" and "*.log" matches nothing. A trailing
// slash narrows an entry to a directory: "build/" leaves "buildscripts"
// alone. Use the version control rules when real patterns are needed.
//
// Version control metadata (".git" at any depth) is excluded under every
// policy.
package ignore
