/*
Package repofind provides CLI tooling to locate remote sources for content refs.

Refs name versioned content streams in an OSTree-style repository. Given a set
of refs, repofind queries several discovery strategies in parallel and merges
their candidate remotes into a single priority-ordered result list:

  - locally configured remotes advertising the requested refs
  - mounted removable volumes carrying a well-known repository layout

A strategy that fails only removes its own contribution, never the whole
query, so callers always get the best answer the healthy strategies could
produce.

The resolution engine lives in pkg/finder, with one subpackage per strategy.
Configured remotes are managed through pkg/remoteconfig.
*/
package repofind
