// Package branchname generates standardized git branch names.
//
// Names follow the YYYY/MM/DD-HHMM-username-type-description convention
// in kebab-case. Suggestions come from an AI call that returns YAML;
// the user can also assemble a custom name from a branch type and a
// description. Creation checks out the new branch and can optionally
// push it upstream.
package branchname
