/*
The sync package implements the one-way mirroring algorithm. A sync run has
two phases:

1) Traversal -- The remote tree is walked sequentially, depth first. Local
   directories are created as their remote counterparts are discovered, and
   every non-excluded remote file is checked against the local mirror. Files
   that are missing locally, or whose local byte length differs from the
   remote one, are collected into a work list of transfer pairs.
2) Transfer -- The work list is fanned out across a pool of workers. Each
   pair is copied independently, and a failed copy is reported without
   affecting any other pair.

Staleness is decided by size alone. Two files with equal lengths are treated
as equal content, which keeps the check to a single stat per file. Callers
that need a stronger guarantee can plug in their own StalenessPolicy.

Exclusions match bare basenames, wherever they occur in the tree. An excluded
directory is never descended into, and an excluded file is never checked.

The traversal phase must finish before any transfer starts: the staleness
check relies on the local directory structure already mirroring the remote
one, and transfers assume their destination directories exist.
*/
package sync
